package render

// Glamour's built-in markdown styles
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StylePink       = "pink"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleInfo describes a markdown style for display
type StyleInfo struct {
	Name        string
	Description string
}

var markdownStyles = []StyleInfo{
	{Name: StyleDark, Description: "Dark theme (default)"},
	{Name: StyleLight, Description: "Light theme for bright terminals"},
	{Name: StyleDracula, Description: "Dracula color scheme"},
	{Name: StyleTokyoNight, Description: "Tokyo Night color scheme"},
	{Name: StylePink, Description: "Pink accents"},
	{Name: StyleNoTTY, Description: "Plain text (no styling)"},
	{Name: StyleASCII, Description: "ASCII-only output"},
}

// AvailableStyles lists the built-in markdown styles
func AvailableStyles() []StyleInfo {
	out := make([]StyleInfo, len(markdownStyles))
	copy(out, markdownStyles)
	return out
}

// IsBuiltinStyle reports whether style names a built-in style rather than
// a JSON file path
func IsBuiltinStyle(style string) bool {
	for _, s := range markdownStyles {
		if s.Name == style {
			return true
		}
	}
	return false
}
