// Package static embeds the API documentation assets served under /static
// and /docs.
package static

import "embed"

//go:embed openapi.html openapi.json
var FS embed.FS

// OpenAPIUI is the documentation page served at /docs.
//
//go:embed openapi.html
var OpenAPIUI []byte
