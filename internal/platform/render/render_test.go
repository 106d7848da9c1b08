package render

import (
	"strings"
	"testing"
)

func TestPlaceholderRender(t *testing.T) {
	data, contentType, err := NewPlaceholder().Render("result_report", map[string]interface{}{
		"patient": "G2G-MRI-1234",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty document")
	}
	if !strings.Contains(string(data), "G2G-MRI-1234") {
		t.Error("expected snapshot values in document")
	}
	if contentType != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content type %s", contentType)
	}
}

func TestPlaceholderRequiresKind(t *testing.T) {
	if _, _, err := NewPlaceholder().Render("", nil); err == nil {
		t.Error("expected error for empty kind")
	}
}
