package platform

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderHelpPage converts bundle documentation into the HTML fragment the
// WordPress admin help page prints.
func renderHelpPage(slug, docs string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="wrap ` + slug + `-help">` + "\n")
	if err := markdown.Convert([]byte(docs), &buf); err != nil {
		return "", fmt.Errorf("rendering help page: %w", err)
	}
	buf.WriteString("</div>\n")
	return buf.String(), nil
}
