// Package style parses the sidebar stylesheet and resolves the properties
// of a UI node into drawable values. It has no raylib dependency so the
// theme can be loaded and checked without a window.
package style

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

//go:embed theme.css
var themeCSS string

// Rule is a single rule: one selector and its raw property values.
type Rule struct {
	Selector string            // e.g. ".button", "#generate" or ".button:hover"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules. Later rules override earlier ones.
type Stylesheet struct {
	Rules []Rule
}

// Parse parses CSS text. Only .class and #id selectors, optionally with a
// single :state suffix, are kept; comma lists are split into one rule per
// selector and at-rules are skipped.
func Parse(content string) (*Stylesheet, error) {
	parsed, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	sheet := &Stylesheet{}
	for _, r := range parsed.Rules {
		if r.Kind == css.AtRule || len(r.Declarations) == 0 {
			continue
		}
		props := make(map[string]string, len(r.Declarations))
		for _, d := range r.Declarations {
			props[strings.ToLower(d.Property)] = strings.TrimSpace(d.Value)
		}
		for _, sel := range r.Selectors {
			sel = strings.TrimSpace(sel)
			if !validSelector(sel) {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
	}
	return sheet, nil
}

// Load reads and parses a stylesheet file.
func Load(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Default returns the embedded theme.
func Default() *Stylesheet {
	sheet, err := Parse(themeCSS)
	if err != nil {
		panic(err)
	}
	return sheet
}

func validSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel, " >+~[")
}

// Match returns the merged properties of every rule that applies to a node
// with the given class and id in the given state ("" for none). Plain rules
// apply first in sheet order, then the matching :state rules, so a state
// always wins over the base look.
func (s *Stylesheet) Match(class, id, state string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	apply := func(withState bool) {
		for _, rule := range s.Rules {
			base, st, hasState := strings.Cut(rule.Selector, ":")
			if hasState != withState || (hasState && st != state) {
				continue
			}
			if !matchesBase(base, class, id) {
				continue
			}
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	apply(false)
	if state != "" {
		apply(true)
	}
	return merged
}

// matchesBase reports whether a .class or #id selector names the node. A
// node may carry several space separated classes.
func matchesBase(sel, class, id string) bool {
	switch sel[0] {
	case '.':
		for _, c := range strings.Fields(class) {
			if c == sel[1:] {
				return true
			}
		}
	case '#':
		return id != "" && id == sel[1:]
	}
	return false
}
