package dom

import (
	"fmt"
	"strings"
)

// Selector is a compiled query. The grammar is a subset of CSS: compounds of
// tag, #id, .class, [attr] and [attr="value"], optionally chained with
// whitespace as the descendant combinator ("main button[data-post-id]").
type Selector struct {
	source string
	chain  []compound
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// Compile parses sel.
func Compile(sel string) (Selector, error) {
	fields := splitCompounds(sel)
	if len(fields) == 0 {
		return Selector{}, fmt.Errorf("empty selector")
	}

	chain := make([]compound, 0, len(fields))
	for _, f := range fields {
		c, err := parseCompound(f)
		if err != nil {
			return Selector{}, fmt.Errorf("selector %q: %w", sel, err)
		}
		chain = append(chain, c)
	}

	return Selector{source: sel, chain: chain}, nil
}

// MustCompile is Compile that panics on error. Use it for constant selectors.
func MustCompile(sel string) Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the source text.
func (s Selector) String() string {
	return s.source
}

// Match reports whether n matches the selector. Ancestor compounds may match
// any ancestor of n.
func (s Selector) Match(n *Node) bool {
	if len(s.chain) == 0 || !s.chain[len(s.chain)-1].match(n) {
		return false
	}

	i := len(s.chain) - 2
	for p := n.parent; p != nil && i >= 0; p = p.parent {
		if s.chain[i].match(p) {
			i--
		}
	}
	return i < 0
}

// QuerySelector returns the first descendant of n matching sel, or nil.
// sel must be valid; see MustCompile.
func (n *Node) QuerySelector(sel string) *Node {
	return n.Query(MustCompile(sel))
}

// QuerySelectorAll returns every descendant of n matching sel in document
// order. sel must be valid; see MustCompile.
func (n *Node) QuerySelectorAll(sel string) []*Node {
	return n.QueryAll(MustCompile(sel))
}

// Query returns the first descendant of n matching s, or nil.
func (n *Node) Query(s Selector) *Node {
	var found *Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if found != nil {
				return false
			}
			if s.Match(d) {
				found = d
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// QueryAll returns every descendant of n matching s in document order.
func (n *Node) QueryAll(s Selector) []*Node {
	var out []*Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if s.Match(d) {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

func (c compound) match(n *Node) bool {
	if n.IsFragment() {
		return false
	}
	if c.tag != "" && c.tag != "*" && c.tag != n.Tag {
		return false
	}
	if c.id != "" && c.id != n.ID() {
		return false
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		if a.name == "class" {
			if a.hasValue && n.ClassName() != a.value || !a.hasValue && !n.HasAttr("class") {
				return false
			}
			continue
		}
		v, ok := n.Attr(a.name)
		if !ok || a.hasValue && v != a.value {
			return false
		}
	}
	return true
}

// splitCompounds splits on whitespace outside of brackets and quotes.
func splitCompounds(sel string) []string {
	var (
		fields  []string
		cur     strings.Builder
		depth   int
		inQuote rune
	)

	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}

	for _, r := range strings.TrimSpace(sel) {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			}
		case r == '"' || r == '\'':
			inQuote = r
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return fields
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0

	readIdent := func() string {
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && s[i] == '*' {
		c.tag = "*"
		i++
	} else {
		c.tag = strings.ToLower(readIdent())
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			c.id = readIdent()
			if c.id == "" {
				return c, fmt.Errorf("empty id at offset %d", i)
			}
		case '.':
			i++
			class := readIdent()
			if class == "" {
				return c, fmt.Errorf("empty class at offset %d", i)
			}
			c.classes = append(c.classes, class)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute at offset %d", i)
			}
			a, err := parseAttr(s[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
			i += end + 1
		default:
			return c, fmt.Errorf("unexpected %q at offset %d", s[i], i)
		}
	}

	return c, nil
}

func parseAttr(body string) (attrMatch, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrMatch{}, fmt.Errorf("empty attribute name in [%s]", body)
	}
	for i := 0; i < len(name); i++ {
		if !isIdentByte(name[i]) {
			return attrMatch{}, fmt.Errorf("invalid attribute name %q", name)
		}
	}
	if !hasValue {
		return attrMatch{name: name}, nil
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') {
		if value[len(value)-1] != value[0] {
			return attrMatch{}, fmt.Errorf("unterminated quote in [%s]", body)
		}
		value = value[1 : len(value)-1]
	}
	return attrMatch{name: name, value: value, hasValue: true}, nil
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9'
}
