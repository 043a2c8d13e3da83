package render

// Markdown renders a reply as terminal markdown. Renderers and their output
// are cached per option set.
func Markdown(content string, opts Options) (string, error) {
	r, err := defaultCache.get(opts)
	if err != nil {
		return "", err
	}
	return r.render(content)
}
