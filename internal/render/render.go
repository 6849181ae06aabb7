// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render turns stored chapter markdown into HTML that is safe to embed.

# Pipeline

 1. goldmark parses the body with GitHub Flavored Markdown (tables,
    strikethrough, autolinks, task lists). Raw HTML in the source is dropped.
 2. bluemonday sanitises the output with its user generated content policy.

[CachedRenderer] wraps any [Renderer] with a Redis backed cache keyed by the
SHA-256 of the markdown, so an edited chapter never serves stale HTML.
*/
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts markdown into sanitised HTML.
type Renderer interface {
	Render(context context.Context, markdown string) (string, error)
}

// # Markdown Renderer

// MarkdownRenderer is the goldmark + bluemonday pipeline.
type MarkdownRenderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewMarkdownRenderer constructs the default pipeline.
func NewMarkdownRenderer() *MarkdownRenderer {
	policy := bluemonday.UGCPolicy()

	// GFM task list checkboxes
	policy.AllowAttrs("type").Matching(bluemonday.SpaceSeparatedTokens).OnElements("input")
	policy.AllowAttrs("checked", "disabled").OnElements("input")

	return &MarkdownRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
	}
}

// Render converts markdown to sanitised HTML.
func (renderer *MarkdownRenderer) Render(_ context.Context, markdown string) (string, error) {
	var buffer bytes.Buffer
	if err := renderer.markdown.Convert([]byte(markdown), &buffer); err != nil {
		return "", fmt.Errorf("render: failed to convert markdown: %w", err)
	}

	return renderer.policy.Sanitize(buffer.String()), nil
}
