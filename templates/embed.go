// Package templates embeds the plugin bundle templates, one directory per
// platform.
package templates

import "embed"

//go:embed figma shopify wordpress
var FS embed.FS
