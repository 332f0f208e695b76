package editor

// Options configure the editor widget.
type Options struct {
	// Mode is the syntax highlighting target, a chroma lexer name.
	Mode string `yaml:"mode" toml:"mode"`
	// Theme is a chroma style name.
	Theme         string `yaml:"theme" toml:"theme"`
	LineNumbers   bool   `yaml:"line_numbers" toml:"line_numbers"`
	MatchBrackets bool   `yaml:"match_brackets" toml:"match_brackets"`
	// IndentUnit is the number of spaces Tab and auto-indent insert.
	IndentUnit int `yaml:"indent_unit" toml:"indent_unit"`
	// TabSize is the display width of a tab character.
	TabSize      int  `yaml:"tab_size" toml:"tab_size"`
	LineWrapping bool `yaml:"line_wrapping" toml:"line_wrapping"`
	// ExtraKeys maps key chords such as "Ctrl-Space" to command lines.
	ExtraKeys map[string]string `yaml:"extra_keys,omitempty" toml:"extra_keys,omitempty"`
}

// DefaultOptions returns the editor configuration used when none is saved.
func DefaultOptions() Options {
	return Options{
		Mode:          "go",
		Theme:         "monokai",
		LineNumbers:   true,
		MatchBrackets: true,
		IndentUnit:    2,
		TabSize:       2,
		LineWrapping:  true,
		ExtraKeys: map[string]string{
			"Ctrl-Space": "autocomplete",
			"Ctrl-Enter": "generate",
		},
	}
}

// normalize fills invalid numeric fields with defaults.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.IndentUnit <= 0 {
		o.IndentUnit = d.IndentUnit
	}
	if o.TabSize <= 0 {
		o.TabSize = d.TabSize
	}
	if o.Mode == "" {
		o.Mode = d.Mode
	}
	if o.Theme == "" {
		o.Theme = d.Theme
	}
	return o
}
