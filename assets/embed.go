package assets

import _ "embed"

// Usage is the help text shown for standalone runs and `typedpipe help`.
//
//go:embed usage.txt
var Usage string
