package ports

import "github.com/aretw0/searchexpr/pkg/domain"

// KeywordResolver resolves one family of "@" keywords.
// Keywords are passed without the "@" prefix, arguments included (e.g. "child(2)").
type KeywordResolver interface {
	// IsResolverForKeyword reports whether this resolver claims the keyword.
	IsResolverForKeyword(ctx *domain.SearchContext, keyword string) bool

	// Resolve returns the components the keyword designates relative to current.
	// An empty result means "nothing found"; an error means the keyword is malformed.
	Resolve(ctx *domain.SearchContext, current *domain.Component, keyword string) ([]*domain.Component, error)

	// IsPassthrough reports whether the keyword is left for the client to interpret.
	IsPassthrough(ctx *domain.SearchContext, keyword string) bool

	// IsLeaf reports whether no further command may follow the keyword.
	IsLeaf(ctx *domain.SearchContext, keyword string) bool
}

// KeywordValidator is optionally implemented by resolvers whose keywords take
// arguments. ValidateKeyword is called while parsing, so a malformed keyword
// is a grammar error whether or not the walk ever reaches it.
type KeywordValidator interface {
	ValidateKeyword(ctx *domain.SearchContext, keyword string) error
}

// KeywordDescriber is optionally implemented by resolvers to document their keywords.
type KeywordDescriber interface {
	Keywords() []KeywordInfo
}

// KeywordInfo documents a keyword for introspection tools (CLI, HTTP, MCP).
type KeywordInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Passthrough bool   `json:"passthrough" yaml:"passthrough"`
	Leaf        bool   `json:"leaf" yaml:"leaf"`
}
