//go:build !headless

package dossier

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Host is the ebiten.Game that shows an Engine in a window. The engine's
// main loop runs on its own goroutine; the host forwards input to it and
// presents the visible page, doubling each line to fill a 640×400 window.
type Host struct {
	engine *Engine
	input  *HostInput
	frame  *ebiten.Image
	pix    []byte
	fps    *fpsOverlay

	errc <-chan error
	err  error
	done bool
}

// NewHost creates a host for e. Input is forwarded only when e reads a
// HostInput.
func NewHost(e *Engine) *Host {
	h := &Host{
		engine: e,
		frame:  ebiten.NewImage(ScreenW, ScreenH),
		pix:    make([]byte, ScreenW*ScreenH*4),
	}
	h.input, _ = e.Input().(*HostInput)
	if e.Config().Debug {
		h.fps = newFPSOverlay()
	}
	return h
}

func hostCursor(c Cursor) ebiten.CursorShapeType {
	switch c {
	case CursorHotspot:
		return ebiten.CursorShapeCrosshair
	case CursorMove:
		return ebiten.CursorShapeMove
	case CursorNote:
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}

func (h *Host) Update() error {
	select {
	case err := <-h.errc:
		h.err, h.done = err, true
		return ebiten.Termination
	default:
	}
	if h.input == nil {
		return nil
	}

	x, y := ebiten.CursorPosition()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	keys := ebiten.AppendInputChars(nil)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		keys = append(keys, KeyEscape)
	}
	h.input.Feed(x, y/2, pressed, keys)
	ebiten.SetCursorShape(hostCursor(h.input.Cursor()))
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.engine.Display().Present(h.pix)
	h.frame.WritePixels(h.pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1, 2)
	screen.DrawImage(h.frame, op)
	if h.fps != nil {
		h.fps.draw(screen)
	}
}

func (h *Host) Layout(int, int) (int, int) {
	return ScreenW, ScreenH * 2
}

// RunGame opens a window and plays e in it until the game ends or the
// window is closed. It returns the engine's error.
func RunGame(ctx context.Context, e *Engine) error {
	cfg := e.Config()
	h := NewHost(e)
	e.Display().AttachHost()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(ScreenW*cfg.Scale, ScreenH*2*cfg.Scale)
	ebiten.SetRunnableOnUnfocused(true)

	h.errc = e.Start(ctx)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		e.Quit()
		<-e.Done()
		return fmt.Errorf("run game: %w", err)
	}
	if !h.done {
		e.Quit()
		h.err = <-h.errc
	}
	return h.err
}
