package suggest

import "testing"

func TestCache_EmptyListIsHit(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("tst"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Put("tst", nil)
	got, ok := c.Get("tst")
	if !ok {
		t.Fatalf("expected hit for empty list entry")
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v, want empty non-nil list", got)
	}
}

func TestCache_KeysAreCaseSensitive(t *testing.T) {
	c := NewCache()
	c.Put("Ths", []string{"This"})
	if _, ok := c.Get("ths"); ok {
		t.Fatalf("lowercase key must not hit an exact-case entry")
	}
	got, ok := c.Get("Ths")
	if !ok || len(got) != 1 || got[0] != "This" {
		t.Fatalf("Get(Ths)=%v,%v", got, ok)
	}
}

func TestCache_CopiesOnReadAndWrite(t *testing.T) {
	c := NewCache()
	in := []string{"test", "tat"}
	c.Put("tst", in)
	in[0] = "mutated"

	got, _ := c.Get("tst")
	if got[0] != "test" {
		t.Fatalf("cache aliased caller slice: %v", got)
	}
	got[1] = "mutated"
	again, _ := c.Get("tst")
	if again[1] != "tat" {
		t.Fatalf("cache aliased returned slice: %v", again)
	}
}

func TestCache_InvalidateAndReset(t *testing.T) {
	c := NewCache()
	c.Put("a", []string{"x"})
	c.Put("b", []string{"y"})
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("a should be gone after Invalidate")
	}
	if c.Len() != 1 {
		t.Fatalf("len=%d, want 1", c.Len())
	}
	c.Invalidate("missing")
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("len=%d after Reset, want 0", c.Len())
	}
}

func TestCache_PutSinceRejectsOldEpoch(t *testing.T) {
	c := NewCache()
	epoch := c.Epoch()
	c.Reset()
	if c.PutSince(epoch, "tst", []string{"test"}) {
		t.Fatalf("PutSince should refuse an epoch from before Reset")
	}
	if _, ok := c.Get("tst"); ok {
		t.Fatalf("entry stored despite old epoch")
	}

	epoch = c.Epoch()
	if !c.PutSince(epoch, "tst", []string{"test"}) {
		t.Fatalf("PutSince with the current epoch should store")
	}
	c.Invalidate("other")
	if c.PutSince(epoch, "tat", nil) {
		t.Fatalf("Invalidate should advance the epoch")
	}
}
