package render

import (
	"strconv"
	"sync"
	"testing"
)

func TestRendererCache_ReusesPerOptions(t *testing.T) {
	c := newRendererCache(maxRenderers)
	opts := DefaultOptions()

	r1, err := c.get(opts)
	if err != nil {
		t.Fatalf("get() error: %v", err)
	}
	r2, err := c.get(DefaultOptions())
	if err != nil {
		t.Fatalf("get() error: %v", err)
	}
	if r1 != r2 {
		t.Error("equal options should share a renderer")
	}

	if _, err := c.get(opts.WithWidth(100)); err != nil {
		t.Fatalf("get() error: %v", err)
	}
	if c.size() != 2 {
		t.Errorf("size() = %d, want 2", c.size())
	}
}

func TestRendererCache_EvictsOldest(t *testing.T) {
	c := newRendererCache(2)
	base := DefaultOptions()

	first, _ := c.get(base.WithWidth(40))
	if _, err := c.get(base.WithWidth(50)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.get(base.WithWidth(60)); err != nil {
		t.Fatal(err)
	}

	if c.size() != 2 {
		t.Errorf("size() = %d, want 2", c.size())
	}
	again, err := c.get(base.WithWidth(40))
	if err != nil {
		t.Fatal(err)
	}
	if again == first {
		t.Error("the oldest width should have been evicted and rebuilt")
	}
}

func TestRendererCache_InvalidStyle(t *testing.T) {
	c := newRendererCache(maxRenderers)
	opts := DefaultOptions()
	opts.Style = "invalid_style_path"

	if _, err := c.get(opts); err == nil {
		t.Error("expected error for invalid style")
	}
	if c.size() != 0 {
		t.Error("a failed renderer must not be cached")
	}
}

func TestReplyRenderer_Memoizes(t *testing.T) {
	c := newRendererCache(maxRenderers)
	r, err := c.get(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	out1, err := r.render("# Rate limits")
	if err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if out1 == "" {
		t.Fatal("expected rendered output")
	}
	if len(r.replies) != 1 {
		t.Errorf("replies = %d, want 1", len(r.replies))
	}

	out2, _ := r.render("# Rate limits")
	if out1 != out2 || len(r.replies) != 1 {
		t.Error("a repeated reply should come from the cache")
	}
}

func TestReplyRenderer_ResetsWhenFull(t *testing.T) {
	c := newRendererCache(maxRenderers)
	r, err := c.get(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < maxReplies; i++ {
		r.replies[strconv.Itoa(i)] = "x"
	}

	if _, err := r.render("one more"); err != nil {
		t.Fatal(err)
	}
	if len(r.replies) != 1 {
		t.Errorf("replies = %d, want 1 after reset", len(r.replies))
	}
}

func TestRendererCache_Concurrent(t *testing.T) {
	c := newRendererCache(maxRenderers)
	opts := DefaultOptions()

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := c.get(opts)
			if err != nil {
				errs <- err
				return
			}
			if _, err := r.render("Use **GET /hotels**"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render error: %v", err)
	}
	if c.size() != 1 {
		t.Errorf("size() = %d, want 1", c.size())
	}
}
