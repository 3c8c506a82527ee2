package sysclip

import (
	"errors"
	"testing"
)

func TestClipboard_UnsupportedReportsError(t *testing.T) {
	if Available() {
		t.Skip("system clipboard present")
	}
	c := New()
	if _, err := c.ReadText(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ReadText err=%v, want ErrUnsupported", err)
	}
	if err := c.WriteText("x"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("WriteText err=%v, want ErrUnsupported", err)
	}
}
