package runtime

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
)

// command is one separator-delimited segment of an expression.
type command struct {
	raw      string
	keyword  string
	resolver ports.KeywordResolver
}

func (c command) isKeyword() bool {
	return c.resolver != nil
}

// parsed is an expression checked against the grammar.
type parsed struct {
	expression string
	absolute   bool
	commands   []command
	// missed is the first command that produced no component during the walk.
	missed string
}

// SplitExpressions splits a series of expressions on the separator chars.
// Separators inside parentheses are kept, so "@id(a b)" stays whole.
func (e *Engine) SplitExpressions(expressions string) []string {
	return splitOutsideParens(expressions, func(r rune) bool {
		for _, sep := range e.separators {
			if r == sep {
				return true
			}
		}
		return false
	})
}

func splitOutsideParens(s string, isSep func(rune) bool) []string {
	var (
		parts []string
		buf   strings.Builder
		depth int
	)
	flush := func() {
		if part := strings.TrimSpace(buf.String()); part != "" {
			parts = append(parts, part)
		}
		buf.Reset()
	}
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0 && isSep(r):
			flush()
			continue
		}
		buf.WriteRune(r)
	}
	flush()
	return parts
}

// splitCommands splits a relative expression on the naming separator.
// Unlike SplitExpressions it keeps empty segments so "a::b" is rejected.
func splitCommands(expression string, sep rune) []string {
	var (
		parts []string
		buf   strings.Builder
		depth int
	)
	for _, r := range expression {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0 && r == sep:
			parts = append(parts, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteRune(r)
	}
	return append(parts, buf.String())
}

func invalid(expression, format string, args ...any) error {
	return &domain.InvalidExpressionError{
		Expression: expression,
		Reason:     fmt.Sprintf(format, args...),
	}
}

// parse checks the grammar of a single expression: every keyword must be
// claimed by a resolver, every id must be legal and no command may follow
// a leaf keyword.
func (e *Engine) parse(ctx *domain.SearchContext, expression string) (*parsed, error) {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return nil, invalid(expression, "empty expression")
	}

	sep := ctx.Separator()
	p := &parsed{expression: expr}
	relative := expr
	if strings.HasPrefix(relative, string(sep)) {
		p.absolute = true
		relative = relative[len(string(sep)):]
		if relative == "" {
			return nil, invalid(expression, "absolute expression has no command")
		}
	}

	raws := splitCommands(relative, sep)
	p.commands = make([]command, 0, len(raws))
	for i, raw := range raws {
		if raw == "" {
			return nil, invalid(expression, "empty command at position %d", i)
		}
		if i > 0 {
			if prev := p.commands[i-1]; prev.isKeyword() && prev.resolver.IsLeaf(ctx, prev.keyword) {
				return nil, invalid(expression, "%q is a leaf keyword and cannot be followed by %q", prev.raw, raw)
			}
		}

		cmd := command{raw: raw}
		if strings.HasPrefix(raw, KeywordPrefix) {
			cmd.keyword = raw[len(KeywordPrefix):]
			res, ok := e.registry.Find(ctx, cmd.keyword)
			if !ok {
				return nil, invalid(expression, "unknown keyword %q", raw)
			}
			if v, ok := res.(ports.KeywordValidator); ok {
				if err := v.ValidateKeyword(ctx, cmd.keyword); err != nil {
					return nil, invalid(expression, "%s", err.Error())
				}
			}
			cmd.resolver = res
		} else if !isValidID(raw) {
			return nil, invalid(expression, "%q is not a valid component id", raw)
		}
		p.commands = append(p.commands, cmd)
	}
	return p, nil
}

// isValidID follows the component id rules: a letter or underscore, then
// letters, digits, dashes or underscores.
func isValidID(id string) bool {
	for i, r := range id {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return id != ""
}

// IsValidExpression reports whether expression parses.
func (e *Engine) IsValidExpression(ctx *domain.SearchContext, expression string) bool {
	_, err := e.parse(ctx, expression)
	return err == nil
}

// IsPassthroughExpression reports whether expression is a single keyword
// that is left for the client to interpret.
func (e *Engine) IsPassthroughExpression(ctx *domain.SearchContext, expression string) bool {
	p, err := e.parse(ctx, expression)
	if err != nil || p.absolute || len(p.commands) != 1 {
		return false
	}
	cmd := p.commands[0]
	return cmd.isKeyword() && cmd.resolver.IsPassthrough(ctx, cmd.keyword)
}
