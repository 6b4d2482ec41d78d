package dossier

import (
	"errors"
	"fmt"
	"testing"
)

func TestCatchFatal(t *testing.T) {
	err := CatchFatal(func() { fatalf("Missing clue %s", "ink") })
	if err == nil || err.Error() != "Missing clue ink" {
		t.Fatalf("err = %v", err)
	}
	if !IsFatal(err) || !IsFatal(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsFatal should see through wrapping")
	}
	if IsFatal(errors.New("plain")) {
		t.Error("plain error is not fatal")
	}
	if CatchFatal(func() {}) != nil {
		t.Error("no panic should give nil")
	}
}

func TestCatchFatalPropagatesOtherPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	_ = CatchFatal(func() { panic("boom") })
	t.Error("unreachable")
}

func TestFormatFatal(t *testing.T) {
	if got := FormatFatal(&FatalError{Msg: "Not enough words!"}); got != "FATAL ERROR: Not enough words!" {
		t.Errorf("got %q", got)
	}
}
