package assets

import "embed"

//go:embed css
var AssetsFS embed.FS
