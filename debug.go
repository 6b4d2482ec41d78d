package dossier

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/dustin/go-humanize"
)

// debugf prints a diagnostic line to stderr.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[dossier] "+format+"\n", args...)
}

// DrawDebug prints the allocator's live byte count in the top left corner
// of the front page.
func (s *Session) DrawDebug() {
	s.d.Text(PageFront, fmt.Sprintf("%8d", s.alloc.Current()), 0, 0, 15, 0)
}

// DumpSceneGraph writes v and everything reachable from it as a Graphviz
// digraph.
func DumpSceneGraph(w io.Writer, v *View) {
	memviz.Map(w, v)
}

// debugCheckScene warns when a scene holds more direct targets than the
// hotspot strip can cache or reaches more popups than the view stack
// allows.
func debugCheckScene(v *View) {
	const strips = (hotspotLimit-hotspotBase)/HotspotH + 1
	if n := len(v.Targets()); n > strips {
		debugf("warning: scene %q has %d targets (strip holds %d)", v.Popup.Filename, n, strips)
	}
	if d := viewDepth(v); d > maxViewDepth {
		debugf("warning: scene %q nests %d popups (stack holds %d)", v.Popup.Filename, d, maxViewDepth)
	}
}

func viewDepth(v *View) int {
	deepest := 0
	for _, t := range v.Targets() {
		if t.Kind == ViewTransition {
			continue
		}
		if d := 1 + viewDepth(t); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// memoryReport logs the allocator's peak and live totals.
func memoryReport(a *Allocator) {
	debugf("memory: peak %s, live %s", humanize.Bytes(a.Peak()), humanize.Bytes(a.Current()))
}
