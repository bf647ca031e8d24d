package shaders

import (
	_ "embed"
)

//go:embed crt.wgsl
var CrtWGSL string
