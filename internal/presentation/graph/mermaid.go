package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/searchexpr/pkg/domain"
)

// Overlay marks the outcome of a resolution on the rendered tree.
type Overlay struct {
	// Source is the client id the expression was resolved from.
	Source string
	// Matches are the client ids the expression resolved to.
	Matches []string
}

// GenerateMermaid produces a Mermaid flowchart of the component tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Naming container: [[Subroutine]]
// - Input: [/Parallelogram/]
// - Default: [Rectangle]
// Unrendered components are drawn with a dashed border, and overlay
// styles (source/matched) are applied if provided.
func GenerateMermaid(view *domain.View, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if view == nil || view.Root == nil {
		return sb.String()
	}

	var hidden []string
	view.Root.Walk(func(c *domain.Component) bool {
		clientID := c.ClientID(view.Separator)
		safeID := sanitizeMermaidID(clientID)

		opener, closer := "[", "]"
		switch {
		case c.IsRoot():
			opener, closer = "((", "))"
		case c.IsNamingContainer():
			opener, closer = "[[", "]]"
		case c.Family == domain.FamilyInput:
			opener, closer = "[/", "/]"
		}

		label := clientID
		if c.Family != "" && !c.IsRoot() {
			label = fmt.Sprintf("%s <br/> <i>%s</i>", clientID, c.Family)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, strings.ReplaceAll(label, "\"", "'"), closer))

		if !c.IsRendered() {
			hidden = append(hidden, safeID)
		}
		if parent := c.Parent(); parent != nil {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(parent.ClientID(view.Separator)), safeID))
		}
		return true
	})

	if len(hidden) > 0 {
		sb.WriteString("    classDef unrendered stroke-dasharray: 5 5,color:#888;\n")
		for _, id := range hidden {
			sb.WriteString(fmt.Sprintf("    class %s unrendered;\n", id))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both light and dark themes.
		sb.WriteString("    classDef matched fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef source fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Matches {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !seen[safeID] && !strings.HasPrefix(id, "@") {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s matched;\n", safeID))
			}
		}
		if overlay.Source != "" {
			sb.WriteString(fmt.Sprintf("    class %s source;\n", sanitizeMermaidID(overlay.Source)))
		}
	}

	return sb.String()
}

// sanitizeMermaidID maps a client id to a Mermaid node id. Any rune outside
// [A-Za-z0-9_] becomes '_'.
func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, id)
}
