package service

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	html, err := RenderMarkdown("# Título\n\n**negrita** <script>alert(1)</script>\n\n| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Título") {
		t.Fatalf("expected heading in output, got %s", html)
	}
	if !strings.Contains(html, "<strong>negrita</strong>") {
		t.Fatalf("expected bold text, got %s", html)
	}
	if !strings.Contains(html, "<table>") {
		t.Fatalf("expected table rendering, got %s", html)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("script tag should be stripped, got %s", html)
	}
}
