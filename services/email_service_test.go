package services

import (
	"strings"
	"testing"
)

func TestConvertHTMLToText(t *testing.T) {
	html := `<h2>Pending</h2><ul><li>P-2024-017: Structural Design</li></ul>`
	text := convertHTMLToText(html)

	if strings.Contains(text, "<") {
		t.Fatalf("tags left in output: %q", text)
	}
	if !strings.Contains(text, "Pending") || !strings.Contains(text, "P-2024-017") {
		t.Fatalf("content lost: %q", text)
	}
	if !strings.Contains(text, "- P-2024-017") {
		t.Fatalf("list items should carry a bullet: %q", text)
	}
}

func TestConvertHTMLToTextMalformed(t *testing.T) {
	// The parser is lenient; the text must survive either way.
	text := convertHTMLToText("<p>unclosed")
	if !strings.Contains(text, "unclosed") {
		t.Fatalf("content lost: %q", text)
	}
}

func TestProcessTemplate(t *testing.T) {
	got := processTemplate("Hello {{name}}, {{count}} items", map[string]string{
		"name":  "Ahmed",
		"count": "3",
	})
	if got != "Hello Ahmed, 3 items" {
		t.Fatalf("got %q", got)
	}

	// Unknown placeholders stay untouched.
	got = processTemplate("{{unknown}}", map[string]string{"name": "x"})
	if got != "{{unknown}}" {
		t.Fatalf("got %q", got)
	}
}
