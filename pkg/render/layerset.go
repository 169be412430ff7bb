package render

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/atopile/atopile-sub007/pkg/board"
)

// Layer references on pads come in three shapes: a concrete name like
// "F.Cu", a suffix wildcard like "*.Cu" that matches every concrete layer
// with that suffix, and a union like "F&B.Cu" that expands to the cross
// product of its prefixes with the suffix.
type TokenKind int

const (
	TokenConcrete TokenKind = iota
	TokenSuffixWildcard
	TokenUnionWildcard
)

// LayerToken is a parsed layer reference.
type LayerToken struct {
	Kind     TokenKind
	Name     string   // concrete token, verbatim
	Prefixes []string // union prefixes, e.g. ["F", "B"]
	Suffix   string   // wildcard/union suffix, e.g. "Cu"
}

type layerExpr struct {
	Star     bool     `parser:"(  @Star"`
	Prefixes []string `parser:" | @Ident ( Amp @Ident )+ )"`
	Suffix   string   `parser:"Dot @Ident"`
}

var layerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z0-9_]+`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Amp", Pattern: `&`},
	{Name: "Dot", Pattern: `\.`},
})

var layerParser = participle.MustBuild[layerExpr](
	participle.Lexer(layerLexer),
)

// ParseLayerToken classifies a raw layer token. Anything the grammar does
// not recognize, including plain names like "F.Cu", is treated as a
// concrete layer.
func ParseLayerToken(raw string) LayerToken {
	expr, err := layerParser.ParseString("", raw)
	if err != nil {
		return LayerToken{Kind: TokenConcrete, Name: raw}
	}
	if expr.Star {
		return LayerToken{Kind: TokenSuffixWildcard, Suffix: expr.Suffix}
	}
	return LayerToken{
		Kind:     TokenUnionWildcard,
		Prefixes: expr.Prefixes,
		Suffix:   expr.Suffix,
	}
}

// Expand returns the concrete layer names a token stands for, given the
// inventory of concrete layers present in the model.
func (t LayerToken) Expand(concrete []string) []string {
	switch t.Kind {
	case TokenSuffixWildcard:
		var out []string
		for _, name := range concrete {
			if strings.HasSuffix(name, "."+t.Suffix) {
				out = append(out, name)
			}
		}
		return out
	case TokenUnionWildcard:
		out := make([]string, 0, len(t.Prefixes))
		for _, p := range t.Prefixes {
			out = append(out, p+"."+t.Suffix)
		}
		return out
	default:
		return []string{t.Name}
	}
}

// Visibility answers "should this layer reference be drawn" for one paint
// pass. It is built fresh per paint from the model's current concrete
// layer inventory and the user's hidden set, so wildcard expansion always
// reflects the model being painted.
type Visibility struct {
	hidden   map[string]bool
	concrete []string
	tokens   map[string]LayerToken // parse memo, per paint
}

// NewVisibility collects the concrete layers referenced anywhere in the
// model and combines them with the hidden set.
func NewVisibility(m *board.RenderModel, hidden []string) *Visibility {
	v := &Visibility{
		hidden: make(map[string]bool, len(hidden)),
		tokens: make(map[string]LayerToken),
	}
	for _, name := range hidden {
		v.hidden[name] = true
	}

	seen := map[string]bool{}
	add := func(name string) {
		// Wildcards are references, not layers.
		if name == "" || strings.ContainsAny(name, "*&") {
			return
		}
		if !seen[name] {
			seen[name] = true
			v.concrete = append(v.concrete, name)
		}
	}

	if m != nil {
		for _, fp := range m.Footprints {
			add(fp.Layer)
			for i := range fp.Drawings {
				add(fp.Drawings[i].Layer)
			}
			for i := range fp.Pads {
				for _, l := range fp.Pads[i].Layers {
					add(l)
				}
			}
		}
		for i := range m.Tracks {
			add(m.Tracks[i].Layer)
		}
		for i := range m.Arcs {
			add(m.Arcs[i].Layer)
		}
		for i := range m.Zones {
			for _, l := range m.Zones[i].Layers {
				add(l)
			}
			for j := range m.Zones[i].Fills {
				add(m.Zones[i].Fills[j].Layer)
			}
		}
		for i := range m.Vias {
			for _, l := range m.Vias[i].Layers {
				add(l)
			}
		}
	}
	return v
}

// LayerVisible reports whether a concrete layer name is visible.
func (v *Visibility) LayerVisible(name string) bool {
	return !v.hidden[name]
}

// TokenVisible reports whether a raw layer token should be drawn. A
// concrete token is visible unless hidden. A suffix wildcard is visible
// if any matching concrete layer exists in the model and is not hidden.
// A union is visible if any of its expansions is visible.
func (v *Visibility) TokenVisible(raw string) bool {
	tok, ok := v.tokens[raw]
	if !ok {
		tok = ParseLayerToken(raw)
		v.tokens[raw] = tok
	}
	switch tok.Kind {
	case TokenSuffixWildcard:
		for _, name := range tok.Expand(v.concrete) {
			if !v.hidden[name] {
				return true
			}
		}
		return false
	case TokenUnionWildcard:
		for _, name := range tok.Expand(nil) {
			if !v.hidden[name] {
				return true
			}
		}
		return false
	default:
		return !v.hidden[tok.Name]
	}
}

// AnyTokenVisible reports whether any token in the list is visible. An
// empty list counts as visible, matching pads that omit their layers.
func (v *Visibility) AnyTokenVisible(tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, t := range tokens {
		if v.TokenVisible(t) {
			return true
		}
	}
	return false
}
