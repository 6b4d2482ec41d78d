//go:build headless

package dossier

import "context"

// RunGame plays e without a window.
func RunGame(ctx context.Context, e *Engine) error {
	return e.Run(ctx)
}
