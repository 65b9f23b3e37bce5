package core

import "github.com/jedi4ever/typedpipe/assets"

// Usage is printed when typedpipe runs outside any pipeline.
var Usage = assets.Usage
