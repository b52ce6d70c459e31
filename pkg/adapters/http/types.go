package http

import "github.com/aretw0/searchexpr/pkg/domain"

// Resolution modes for POST /resolve.
const (
	ModeIDs        = "ids"
	ModeComponents = "components"
)

// ViewRef names the view a request works on: either inline or by ID.
type ViewRef struct {
	View   *domain.View `json:"view,omitempty"`
	ViewID string       `json:"view_id,omitempty"`
}

// ResolveRequest is the body of POST /resolve.
type ResolveRequest struct {
	ViewRef
	// Source is the client id of the anchor component. Empty means the view root.
	Source     string   `json:"source,omitempty"`
	Expression string   `json:"expression"`
	Hints      []string `json:"hints,omitempty"`
	Mode       string   `json:"mode,omitempty"`
}

// ComponentRef describes a resolved component.
type ComponentRef struct {
	ClientID string `json:"client_id"`
	ID       string `json:"id"`
	Family   string `json:"family,omitempty"`
}

// ResolveResponse carries the result of POST /resolve.
// On failure Error is set and the partial results are kept.
type ResolveResponse struct {
	ClientIDs  []string       `json:"client_ids,omitempty"`
	Components []ComponentRef `json:"components,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	ViewRef
	Source     string `json:"source,omitempty"`
	Expression string `json:"expression"`
}

// ValidateResponse carries the result of POST /validate.
type ValidateResponse struct {
	Valid       bool `json:"valid"`
	Passthrough bool `json:"passthrough"`
}

// SplitRequest is the body of POST /split.
type SplitRequest struct {
	Expressions string `json:"expressions"`
}

// SplitResponse carries the result of POST /split.
type SplitResponse struct {
	Expressions []string `json:"expressions"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
