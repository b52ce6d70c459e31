package keywords

import (
	"fmt"
	"strings"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
)

// Func computes the components designated by a keyword relative to current.
// arg holds the text between the parentheses, if any.
type Func func(ctx *domain.SearchContext, current *domain.Component, arg string) ([]*domain.Component, error)

// Keyword is a ports.KeywordResolver claiming a single keyword name.
type Keyword struct {
	Name        string
	Description string
	// Argument is true for keywords written as name(arg).
	Argument    bool
	Passthrough bool
	Leaf        bool
	// Check validates the argument of an Argument keyword. Optional.
	Check func(arg string) error
	Fn    Func
}

var (
	_ ports.KeywordResolver  = (*Keyword)(nil)
	_ ports.KeywordDescriber = (*Keyword)(nil)
	_ ports.KeywordValidator = (*Keyword)(nil)
)

// Parse splits "name(arg)" into its name and argument.
// ok is false when the keyword carries no argument.
func Parse(keyword string) (name, arg string, ok bool) {
	open := strings.IndexByte(keyword, '(')
	if open <= 0 || !strings.HasSuffix(keyword, ")") {
		return keyword, "", false
	}
	return keyword[:open], keyword[open+1 : len(keyword)-1], true
}

// IsResolverForKeyword claims the keyword when its name matches.
func (k *Keyword) IsResolverForKeyword(_ *domain.SearchContext, keyword string) bool {
	name, _, _ := Parse(keyword)
	return name == k.Name
}

// ValidateKeyword checks the argument shape, then Check.
func (k *Keyword) ValidateKeyword(_ *domain.SearchContext, keyword string) error {
	_, arg, hasArg := Parse(keyword)
	switch {
	case k.Argument && !hasArg:
		return fmt.Errorf("keyword @%s requires an argument, e.g. @%s(...)", k.Name, k.Name)
	case k.Argument && strings.TrimSpace(arg) == "":
		return fmt.Errorf("keyword @%s requires a non-empty argument", k.Name)
	case !k.Argument && hasArg:
		return fmt.Errorf("keyword @%s takes no argument", k.Name)
	}
	if k.Check != nil {
		return k.Check(strings.TrimSpace(arg))
	}
	return nil
}

// Resolve validates the keyword and delegates to Fn.
func (k *Keyword) Resolve(ctx *domain.SearchContext, current *domain.Component, keyword string) ([]*domain.Component, error) {
	if err := k.ValidateKeyword(ctx, keyword); err != nil {
		return nil, err
	}
	if k.Fn == nil {
		return nil, nil
	}
	_, arg, _ := Parse(keyword)
	return k.Fn(ctx, current, strings.TrimSpace(arg))
}

// IsPassthrough reports whether the keyword is left to the client.
func (k *Keyword) IsPassthrough(_ *domain.SearchContext, _ string) bool {
	return k.Passthrough
}

// IsLeaf reports whether the keyword ends the expression.
func (k *Keyword) IsLeaf(_ *domain.SearchContext, _ string) bool {
	return k.Leaf
}

// Keywords documents the keyword.
func (k *Keyword) Keywords() []ports.KeywordInfo {
	name := "@" + k.Name
	if k.Argument {
		name += "(...)"
	}
	return []ports.KeywordInfo{{
		Name:        name,
		Description: k.Description,
		Passthrough: k.Passthrough,
		Leaf:        k.Leaf,
	}}
}

func one(c *domain.Component) []*domain.Component {
	if c == nil {
		return nil
	}
	return []*domain.Component{c}
}
