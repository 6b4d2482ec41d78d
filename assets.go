package dossier

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

const (
	rleMarker = 0x96

	// instrumentHeader is skipped on every 'S'-tagged asset.
	instrumentHeader = 36
)

// AssetSource resolves logical asset names to bytes. Every method except
// Resolve and Close treats an unknown name as a fatal content error.
type AssetSource interface {
	// Resolve reports where name lives in the container.
	Resolve(name string) (offset, size int64, ok bool)
	// Load fills dst[:size] with the decoded asset.
	Load(name string, size int, dst []byte)
	// Dimensions reads the width and height header of a bitmap asset.
	Dimensions(name string) (w, h int)
	// Len returns the stored size of the asset.
	Len(name string) int
	Close() error
}

// assetKind derives the storage encoding from the third-from-last character
// of the name: 'R' is run-length encoded, 'S' carries a header to skip.
func assetKind(name string) (rle bool, skip int) {
	if len(name) < 3 {
		return false, 0
	}
	switch name[len(name)-3] {
	case 'R':
		return true, 0
	case 'S':
		return false, instrumentHeader
	}
	return false, 0
}

// DecodeRLE expands src into dst. The first four bytes are copied verbatim;
// after them a marker byte 0x96 is followed by a count and a value, any
// other byte is a literal. It returns the number of bytes written.
func DecodeRLE(src, dst []byte) (int, error) {
	if len(src) < 4 || len(dst) < 4 {
		return 0, fmt.Errorf("rle: short header")
	}
	n := copy(dst, src[:4])
	for i := 4; i < len(src); i++ {
		c := src[i]
		if c != rleMarker {
			if n >= len(dst) {
				return n, fmt.Errorf("rle: output overflow at input %d", i)
			}
			dst[n] = c
			n++
			continue
		}
		if i+2 >= len(src) {
			return n, fmt.Errorf("rle: truncated run at input %d", i)
		}
		count, val := int(src[i+1]), src[i+2]
		i += 2
		if n+count > len(dst) {
			return n, fmt.Errorf("rle: output overflow at input %d", i)
		}
		for j := 0; j < count; j++ {
			dst[n+j] = val
		}
		n += count
	}
	return n, nil
}

// EncodeRLE is the inverse of DecodeRLE, used when generating packs.
func EncodeRLE(src []byte) []byte {
	if len(src) < 4 {
		return append([]byte(nil), src...)
	}
	out := append([]byte(nil), src[:4]...)
	for i := 4; i < len(src); {
		c := src[i]
		run := 1
		for i+run < len(src) && src[i+run] == c && run < 255 {
			run++
		}
		if run > 3 || c == rleMarker {
			out = append(out, rleMarker, byte(run), c)
		} else {
			for j := 0; j < run; j++ {
				out = append(out, c)
			}
		}
		i += run
	}
	return out
}

// decodeAsset turns the stored bytes of name into size decoded bytes.
func decodeAsset(name string, raw []byte, size int, dst []byte) {
	rle, skip := assetKind(name)
	if skip > len(raw) {
		fatalf("Unable to open file %s", name)
	}
	raw = raw[skip:]
	if rle {
		n, err := DecodeRLE(raw, dst[:size])
		if err != nil || n != size {
			fatalf("Corrupt asset %s", name)
		}
		return
	}
	if len(raw) < size {
		fatalf("Corrupt asset %s", name)
	}
	copy(dst[:size], raw[:size])
}

// PackEntry locates one asset inside a pack container.
type PackEntry struct {
	Name   string
	Offset int64
	Size   int64
}

// ParsePackIndex reads a text index with one "name offset size" entry per
// line. Blank lines and lines starting with '#' are ignored.
func ParsePackIndex(r io.Reader) ([]PackEntry, error) {
	var entries []PackEntry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f := strings.Fields(text)
		if len(f) != 3 {
			return nil, fmt.Errorf("parse pack index: line %d: want 3 fields, got %d", line, len(f))
		}
		ofs, err := strconv.ParseInt(f[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse pack index: line %d: offset: %w", line, err)
		}
		size, err := strconv.ParseInt(f[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse pack index: line %d: size: %w", line, err)
		}
		entries = append(entries, PackEntry{Name: f[0], Offset: ofs, Size: size})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse pack index: %w", err)
	}
	return entries, nil
}

// Pack serves assets from a single container read through io.ReaderAt.
type Pack struct {
	r       io.ReaderAt
	closer  io.Closer
	entries map[string]PackEntry
}

// NewPack wraps a container and its index.
func NewPack(r io.ReaderAt, entries []PackEntry) *Pack {
	p := &Pack{r: r, entries: make(map[string]PackEntry, len(entries))}
	if c, ok := r.(io.Closer); ok {
		p.closer = c
	}
	for _, e := range entries {
		p.entries[e.Name] = e
	}
	return p
}

// OpenPack opens packName and indexName in fsys.
func OpenPack(fsys fs.FS, packName, indexName string) (*Pack, error) {
	idx, err := fs.ReadFile(fsys, indexName)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	entries, err := ParsePackIndex(bytes.NewReader(idx))
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(packName)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	if ra, ok := f.(io.ReaderAt); ok {
		p := NewPack(ra, entries)
		p.closer = f
		return p, nil
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	return NewPack(bytes.NewReader(data), entries), nil
}

// BuildPack lays out named assets back to back and returns the container
// bytes with its index. Names ending in an 'R'-tagged extension are RLE
// encoded on the way in.
func BuildPack(names []string, data map[string][]byte) ([]byte, []PackEntry) {
	var buf bytes.Buffer
	entries := make([]PackEntry, 0, len(names))
	for _, n := range names {
		raw := data[n]
		if rle, _ := assetKind(n); rle {
			raw = EncodeRLE(raw)
		}
		entries = append(entries, PackEntry{Name: n, Offset: int64(buf.Len()), Size: int64(len(raw))})
		buf.Write(raw)
	}
	return buf.Bytes(), entries
}

// FormatPackIndex writes entries in the ParsePackIndex format.
func FormatPackIndex(w io.Writer, entries []PackEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %d %d\n", e.Name, e.Offset, e.Size); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pack) entry(name string) PackEntry {
	e, ok := p.entries[name]
	if !ok {
		fatalf("Unable to open file %s", name)
	}
	return e
}

func (p *Pack) Resolve(name string) (int64, int64, bool) {
	e, ok := p.entries[name]
	return e.Offset, e.Size, ok
}

func (p *Pack) Load(name string, size int, dst []byte) {
	e := p.entry(name)
	raw := make([]byte, e.Size)
	if _, err := p.r.ReadAt(raw, e.Offset); err != nil && err != io.EOF {
		fatalf("Unable to read file %s", name)
	}
	decodeAsset(name, raw, size, dst)
}

func (p *Pack) Dimensions(name string) (int, int) {
	e := p.entry(name)
	var wh [4]byte
	if _, err := p.r.ReadAt(wh[:], e.Offset); err != nil && err != io.EOF {
		fatalf("Unable to read file %s", name)
	}
	return int(binary.LittleEndian.Uint16(wh[0:])), int(binary.LittleEndian.Uint16(wh[2:]))
}

func (p *Pack) Len(name string) int {
	return int(p.entry(name).Size)
}

func (p *Pack) Close() error {
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

// DirSource serves every asset from its own file in an fs.FS. Backslashes
// in asset names map to path separators.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource wraps fsys.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

func assetPath(name string) string {
	return strings.ReplaceAll(name, `\`, "/")
}

func (s *DirSource) read(name string) []byte {
	data, err := fs.ReadFile(s.fsys, assetPath(name))
	if err != nil {
		fatalf("Unable to open file %s", name)
	}
	return data
}

func (s *DirSource) Resolve(name string) (int64, int64, bool) {
	st, err := fs.Stat(s.fsys, assetPath(name))
	if err != nil {
		return 0, 0, false
	}
	return 0, st.Size(), true
}

func (s *DirSource) Load(name string, size int, dst []byte) {
	decodeAsset(name, s.read(name), size, dst)
}

func (s *DirSource) Dimensions(name string) (int, int) {
	data := s.read(name)
	if len(data) < 4 {
		fatalf("Corrupt asset %s", name)
	}
	return int(binary.LittleEndian.Uint16(data[0:])), int(binary.LittleEndian.Uint16(data[2:]))
}

func (s *DirSource) Len(name string) int {
	return len(s.read(name))
}

func (s *DirSource) Close() error { return nil }
