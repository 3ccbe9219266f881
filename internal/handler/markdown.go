package handler

import (
	"bytes"
	"log"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts markdown content to sanitized HTML. A render
// failure degrades to an empty string; reads should not break on a bad body.
func renderMarkdown(content string) string {
	if content == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		log.Printf("failed to render markdown: %v", err)
		return ""
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes()))
}
