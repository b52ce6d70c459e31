package middleware

import "github.com/aretw0/searchexpr/pkg/ports"

// Middleware allows wrapping a ViewStore to add behavior.
type Middleware func(ports.ViewStore) ports.ViewStore

// Chain applies mws so that the first one is the outermost.
func Chain(store ports.ViewStore, mws ...Middleware) ports.ViewStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
