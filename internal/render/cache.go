package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

const (
	// maxRenderers bounds how many option sets keep a renderer. Every
	// terminal resize produces a new width.
	maxRenderers = 8

	// maxReplies bounds the memoized replies per renderer
	maxReplies = 256
)

// replyRenderer is a glamour renderer with the replies it has already
// rendered. The chat view redraws every bot reply on each update, so a
// reply is rendered once per option set.
type replyRenderer struct {
	mu      sync.Mutex
	tr      *glamour.TermRenderer
	replies map[string]string
}

func (r *replyRenderer) render(content string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if out, ok := r.replies[content]; ok {
		return out, nil
	}

	out, err := r.tr.Render(content)
	if err != nil {
		return "", err
	}
	if len(r.replies) >= maxReplies {
		r.replies = make(map[string]string)
	}
	r.replies[content] = out
	return out, nil
}

// rendererCache maps option sets to renderers, dropping the oldest set
// once the limit is reached
type rendererCache struct {
	mu      sync.Mutex
	entries map[Options]*replyRenderer
	order   []Options
	limit   int
}

func newRendererCache(limit int) *rendererCache {
	return &rendererCache{
		entries: make(map[Options]*replyRenderer),
		limit:   limit,
	}
}

var defaultCache = newRendererCache(maxRenderers)

func (c *rendererCache) get(opts Options) (*replyRenderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.entries[opts]; ok {
		return r, nil
	}

	tr, err := createRenderer(opts)
	if err != nil {
		return nil, err
	}

	if len(c.order) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	r := &replyRenderer{tr: tr, replies: make(map[string]string)}
	c.entries[opts] = r
	c.order = append(c.order, opts)
	return r, nil
}

func (c *rendererCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// createRenderer builds a TermRenderer. WithStylePath accepts both built-in
// style names and JSON file paths.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}
