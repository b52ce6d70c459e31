package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/searchexpr/pkg/ports"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
// Outside a terminal, markdown is returned unchanged.
func NewRenderer() func(string) (string, error) {
	if !IsTerminal() {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// KeywordsMarkdown formats the keyword table.
func KeywordsMarkdown(infos []ports.KeywordInfo) string {
	var sb strings.Builder
	sb.WriteString("# Search keywords\n\n")
	sb.WriteString("| Keyword | Description | Passthrough | Leaf |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, k := range infos {
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
			k.Name,
			strings.ReplaceAll(k.Description, "|", `\|`),
			check(k.Passthrough),
			check(k.Leaf),
		))
	}
	return sb.String()
}

func check(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
