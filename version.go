package searchexpr

import _ "embed"

// Version is the release of the library and its CLI.
//
//go:embed VERSION
var Version string
