package markup

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/glyphbox/internal/logger"
)

var (
	// Rules are tried in order. A brace that reaches the Open rule has no
	// closing brace anywhere after it.
	textLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Directive", Pattern: `\{[^}]*\}`},
		{Name: "Open", Pattern: `\{`},
		{Name: "Text", Pattern: `[^{]+`},
	})
	directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Pair", Pattern: `[^\s:]+:\S*`},
		{Name: "Word", Pattern: `\S+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	directiveType = mustTokenType(textLexer, "Directive")
	openType      = mustTokenType(textLexer, "Open")
	textType      = mustTokenType(textLexer, "Text")
	pairType      = mustTokenType(directiveLexer, "Pair")
	wordType      = mustTokenType(directiveLexer, "Word")
)

// Parse splits raw into styled runs. The factory supplies the initial style,
// the resolver turns directive values into colors and fonts.
//
// Malformed markup never fails: an unterminated directive is kept as text.
// A directive naming a color or font the resolver does not know returns a
// *ResolveError.
func Parse(raw string, f Factory, res Resolver) ([]Run, error) {
	if raw == "" {
		return nil, nil
	}
	tokens, err := scan(raw)
	if err != nil {
		return nil, err
	}

	p := parser{factory: f, res: res, state: f.Style()}
	for _, tok := range tokens {
		switch tok.Type {
		case textType:
			p.buf.WriteString(tok.Value)
		case directiveType:
			p.flush()
			body := tok.Value[1 : len(tok.Value)-1]
			if err := p.apply(body, tok.Pos.Offset); err != nil {
				return nil, err
			}
		case openType:
			logger.Get().Debug("markup: unterminated directive", "offset", tok.Pos.Offset)
			p.buf.WriteString(raw[tok.Pos.Offset:])
			p.flush()
			return p.runs, nil
		}
	}
	p.flush()
	return p.runs, nil
}

// Strip returns raw without its directives, exactly as Parse would lay it out.
func Strip(raw string) string {
	tokens, err := scan(raw)
	if err != nil {
		return raw
	}
	var sb strings.Builder
	for _, tok := range tokens {
		switch tok.Type {
		case textType:
			sb.WriteString(tok.Value)
		case openType:
			sb.WriteString(raw[tok.Pos.Offset:])
			return sb.String()
		}
	}
	return sb.String()
}

type parser struct {
	factory Factory
	res     Resolver
	state   Style

	buf    strings.Builder
	offset int
	runs   []Run
}

func (p *parser) flush() {
	if p.buf.Len() == 0 {
		return
	}
	text := p.buf.String()
	p.buf.Reset()
	p.runs = append(p.runs, Run{Text: text, Offset: p.offset, Style: p.state})
	p.offset += utf8.RuneCountInString(text)
}

func (p *parser) apply(body string, at int) error {
	lex, err := directiveLexer.LexString("", body)
	if err != nil {
		return err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		switch tok.Type {
		case pairType:
			key, value, _ := strings.Cut(tok.Value, ":")
			if err := p.set(key, value, at); err != nil {
				return err
			}
		case wordType:
			logger.Get().Debug("markup: directive token without value", "token", tok.Value, "offset", at)
		}
	}
	return nil
}

func (p *parser) set(key, value string, at int) error {
	switch key {
	case "top", "bottom", "color":
		c, err := p.color(key, value, at)
		if err != nil {
			return err
		}
		switch {
		case key == "color" || p.factory.Kind == KindSimple:
			p.state.Top, p.state.Bottom = c, c
		case key == "top":
			p.state.Top = c
		default:
			p.state.Bottom = c
		}
	case "font":
		if p.res == nil {
			return &ResolveError{Key: key, Name: value, Offset: at, Err: ErrNoResolver}
		}
		f, err := p.res.Font(value)
		if err != nil {
			return &ResolveError{Key: key, Name: value, Offset: at, Err: err}
		}
		if f == nil {
			return &ResolveError{Key: key, Name: value, Offset: at, Err: fmt.Errorf("font %q resolved to nil", value)}
		}
		p.state.Font = f
	default:
		logger.Get().Debug("markup: ignoring directive key", "key", key, "offset", at)
	}
	return nil
}

func (p *parser) color(key, value string, at int) (Color, error) {
	if p.res == nil {
		return Color{}, &ResolveError{Key: key, Name: value, Offset: at, Err: ErrNoResolver}
	}
	c, err := p.res.Color(value)
	if err != nil {
		return Color{}, &ResolveError{Key: key, Name: value, Offset: at, Err: err}
	}
	return RGBA(c), nil
}

func scan(raw string) ([]lexer.Token, error) {
	lex, err := textLexer.LexString("", raw)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("markup: scan: %w", err)
	}
	return tokens, nil
}

func mustTokenType(def *lexer.StatefulDefinition, name string) lexer.TokenType {
	tt, ok := def.Symbols()[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
