package registry

import (
	"sync"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
)

// Registry holds keyword resolvers in registration order.
// Lookup returns the first resolver that claims a keyword, so a resolver
// registered earlier shadows any later one claiming the same keyword.
type Registry struct {
	mu        sync.RWMutex
	resolvers []ports.KeywordResolver
}

// NewRegistry creates a registry seeded with the given resolvers.
func NewRegistry(resolvers ...ports.KeywordResolver) *Registry {
	return &Registry{
		resolvers: append([]ports.KeywordResolver(nil), resolvers...),
	}
}

// Register appends resolvers to the end of the lookup order.
func (r *Registry) Register(resolvers ...ports.KeywordResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers = append(r.resolvers, resolvers...)
}

// Prepend inserts resolvers ahead of every registered resolver.
// Use it to override a built-in keyword.
func (r *Registry) Prepend(resolvers ...ports.KeywordResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers = append(append([]ports.KeywordResolver(nil), resolvers...), r.resolvers...)
}

// Find returns the first resolver claiming keyword.
func (r *Registry) Find(ctx *domain.SearchContext, keyword string) (ports.KeywordResolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.resolvers {
		if res.IsResolverForKeyword(ctx, keyword) {
			return res, true
		}
	}
	return nil, false
}

// All returns a snapshot of the resolvers in lookup order.
func (r *Registry) All() []ports.KeywordResolver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ports.KeywordResolver(nil), r.resolvers...)
}

// Keywords collects the documentation of every resolver implementing ports.KeywordDescriber.
func (r *Registry) Keywords() []ports.KeywordInfo {
	var infos []ports.KeywordInfo
	for _, res := range r.All() {
		if d, ok := res.(ports.KeywordDescriber); ok {
			infos = append(infos, d.Keywords()...)
		}
	}
	return infos
}

// Len returns the number of registered resolvers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resolvers)
}
