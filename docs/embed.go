package docs

import "embed"

// FS contains long-form Markdown docs bundled with the pks binary.
//
//go:embed guide reference
var FS embed.FS
