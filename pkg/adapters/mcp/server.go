package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/searchexpr"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ResolveResponse is the structured result of resolve_expression.
type ResolveResponse struct {
	ClientIDs []string `json:"client_ids" jsonschema_description:"Client ids and passthrough keywords, in expression order"`
	Error     string   `json:"error,omitempty" jsonschema_description:"Set when some expressions failed; client_ids then holds the partial result"`
}

// ValidateResponse is the structured result of validate_expression.
type ValidateResponse struct {
	Valid       bool `json:"valid" jsonschema_description:"Whether the expression is well-formed"`
	Passthrough bool `json:"passthrough" jsonschema_description:"Whether the expression is returned verbatim to the client"`
}

// SplitResponse is the structured result of split_expressions.
type SplitResponse struct {
	Expressions []string `json:"expressions" jsonschema_description:"The individual expressions"`
}

// Resolver is the subset of searchexpr.Handler the MCP server needs.
type Resolver interface {
	ResolveClientIDs(ctx *domain.SearchContext, expressions string) ([]string, error)
	IsValidExpression(ctx *domain.SearchContext, expression string) bool
	IsPassthroughExpression(ctx *domain.SearchContext, expression string) bool
	SplitExpressions(expressions string) []string
	Keywords() []ports.KeywordInfo
	LoadView(id string) (*domain.View, error)
}

var _ Resolver = (*searchexpr.Handler)(nil)

// Server wraps a Resolver and exposes it as an MCP Server.
type Server struct {
	resolver  Resolver
	loader    ports.ViewLoader
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance. loader may be nil, in which
// case the searchexpr://views resource is not registered.
func NewServer(resolver Resolver, loader ports.ViewLoader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s := &Server{
		resolver:  resolver,
		loader:    loader,
		mcpServer: server.NewMCPServer("searchexpr-mcp", strings.TrimSpace(searchexpr.Version)),
		logger:    logger,
	}
	s.registerTools()
	if loader != nil {
		s.registerResources()
	}
	return s
}

// MCPServer exposes the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	viewArgs := []mcp.ToolOption{
		mcp.WithString("view_id", mcp.Description("ID of a view known to the loader")),
		mcp.WithString("view", mcp.Description("Inline view as a JSON document (used when view_id is empty)")),
		mcp.WithString("source", mcp.Description("Client id of the anchor component; the view root when omitted")),
	}

	// TOOL: resolve_expression
	resolveTool := mcp.NewTool("resolve_expression", append([]mcp.ToolOption{
		mcp.WithDescription("Resolve one or more search expressions (e.g. \"@form:name @all\") to client ids."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expressions separated by commas or spaces")),
		mcp.WithString("hints", mcp.Description("Comma separated hints: ignore_no_result, resolve_single_component, skip_unrendered")),
		mcp.WithOutputSchema[ResolveResponse](),
	}, viewArgs...)...)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolve))

	// TOOL: validate_expression
	validateTool := mcp.NewTool("validate_expression", append([]mcp.ToolOption{
		mcp.WithDescription("Check whether a search expression is well-formed and whether it is passthrough."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("A single expression")),
		mcp.WithOutputSchema[ValidateResponse](),
	}, viewArgs...)...)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: split_expressions
	splitTool := mcp.NewTool("split_expressions",
		mcp.WithDescription("Split a series of search expressions into individual expressions."),
		mcp.WithString("expressions", mcp.Required(), mcp.Description("Expressions separated by commas or spaces")),
		mcp.WithOutputSchema[SplitResponse](),
	)
	s.mcpServer.AddTool(splitTool, mcp.NewStructuredToolHandler(s.handleSplit))

	// TOOL: list_keywords
	s.mcpServer.AddTool(mcp.NewTool("list_keywords",
		mcp.WithDescription("List the registered search keywords."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.resolver.Keywords())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list keywords failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResolveResponse, error) {
	sctx, err := s.searchContext(args)
	if err != nil {
		return ResolveResponse{}, err
	}
	expression, _ := args["expression"].(string)

	ids, err := s.resolver.ResolveClientIDs(sctx, expression)
	resp := ResolveResponse{ClientIDs: ids}
	if resp.ClientIDs == nil {
		resp.ClientIDs = []string{}
	}
	if err != nil {
		s.logger.Debug("MCP Resolve failed", "expression", expression, "err", err)
		resp.Error = err.Error()
	}
	return resp, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	sctx, err := s.searchContext(args)
	if err != nil {
		return ValidateResponse{}, err
	}
	expression, _ := args["expression"].(string)
	return ValidateResponse{
		Valid:       s.resolver.IsValidExpression(sctx, expression),
		Passthrough: s.resolver.IsPassthroughExpression(sctx, expression),
	}, nil
}

func (s *Server) handleSplit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SplitResponse, error) {
	expressions, _ := args["expressions"].(string)
	parts := s.resolver.SplitExpressions(expressions)
	if parts == nil {
		parts = []string{}
	}
	return SplitResponse{Expressions: parts}, nil
}

func (s *Server) searchContext(args map[string]interface{}) (*domain.SearchContext, error) {
	view, err := s.view(args)
	if err != nil {
		return nil, err
	}

	var source *domain.Component
	if id, _ := args["source"].(string); id != "" {
		if source = view.FindByClientID(id); source == nil {
			return nil, fmt.Errorf("source component %q not found in view %s", id, view.ID)
		}
	}

	var hints []domain.Hint
	if raw, _ := args["hints"].(string); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			hint, ok := domain.ParseHint(strings.TrimSpace(name))
			if !ok {
				return nil, fmt.Errorf("unknown hint %q", name)
			}
			hints = append(hints, hint)
		}
	}
	return domain.NewSearchContext(view, source, hints...), nil
}

func (s *Server) view(args map[string]interface{}) (*domain.View, error) {
	if id, _ := args["view_id"].(string); id != "" {
		return s.resolver.LoadView(id)
	}
	raw, _ := args["view"].(string)
	if raw == "" {
		return nil, fmt.Errorf("either view_id or view is required")
	}
	var view domain.View
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, fmt.Errorf("invalid view: %w", err)
	}
	if view.Root == nil {
		return nil, fmt.Errorf("invalid view: no root component")
	}
	view.Link()
	return &view, nil
}

func (s *Server) registerResources() {
	// EXPOSE: searchexpr://views
	s.mcpServer.AddResource(mcp.NewResource("searchexpr://views", "Available Views",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.loader.ListViews()
		if err != nil {
			return nil, fmt.Errorf("failed to list views: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "searchexpr://views",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
