package utils

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// 帖子和评论共用一套渲染规则：GFM 语法、保留用户换行、UGC 白名单过滤
var (
	textMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	textPolicy = newTextPolicy()
)

// newTextPolicy 允许图片引用，外链在新窗口打开且不带 referrer
func newTextPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// RenderText 将帖子或评论正文渲染为安全的 HTML
func RenderText(text string) template.HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := textMarkdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return EnhanceHTMLContent(textPolicy.Sanitize(buf.String()))
}
