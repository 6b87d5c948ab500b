package styles

// NewDefaultTheme creates the dark bindery theme.
func NewDefaultTheme() *Theme {
	return &Theme{
		Name:   "bindery",
		IsDark: true,

		Primary:   ParseHex("#4fb3bf"), // teal
		Secondary: ParseHex("#7fd1ae"), // mint
		Tertiary:  ParseHex("#34424a"),
		Accent:    ParseHex("#f0a35e"), // amber

		BgBase:    ParseHex("#1b2126"),
		BgSubtle:  ParseHex("#222a30"),
		BgOverlay: ParseHex("#2a333a"),

		FgBase:   ParseHex("#c9d1d9"),
		FgMuted:  ParseHex("#8b949e"),
		FgSubtle: ParseHex("#5f6b75"),

		Border:      ParseHex("#34424a"),
		BorderFocus: ParseHex("#4fb3bf"),

		Success: ParseHex("#7fd1ae"),
		Error:   ParseHex("#ef6f6c"),
		Warning: ParseHex("#f0c05e"),
		Info:    ParseHex("#6cb6ff"),
	}
}
