package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the searchexpr banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{`  ___  ___  __ _ _ __ ___| |__   _____  ___ __  _ __ `, "#818cf8"},
		{` / __|/ _ \/ _' | '__/ __| '_ \ / _ \ \/ / '_ \| '__|`, "#a78bfa"},
		{` \__ \  __/ (_| | | | (__| | | |  __/>  <| |_) | |   `, "#e879f9"},
		{` |___/\___|\__,_|_|  \___|_| |_|\___/_/\_\ .__/|_|   `, "#f472b6"},
		{`                                         |_|         `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version = strings.TrimSpace(version); version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}

// Highlight colors a resolved client id for terminal output.
func Highlight(s string) string {
	p := termenv.ColorProfile()
	if strings.HasPrefix(s, "@") {
		return termenv.String(s).Foreground(p.Color("#fbbf24")).Italic().String()
	}
	return termenv.String(s).Foreground(p.Color("#34d399")).Bold().String()
}
