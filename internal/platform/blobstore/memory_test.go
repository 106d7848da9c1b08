package blobstore

import (
	"context"
	"strings"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, "results/p1/a.pdf", strings.NewReader("pdf-bytes"), -1, "application/pdf"); err != nil {
		t.Fatalf("put: %v", err)
	}

	url, err := s.SignedURL(ctx, "results/p1/a.pdf")
	if err != nil {
		t.Fatalf("signed url: %v", err)
	}
	if !strings.Contains(url, "results/p1/a.pdf") {
		t.Errorf("unexpected url %s", url)
	}

	if err := s.Delete(ctx, "results/p1/a.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.Get("results/p1/a.pdf"); ok {
		t.Error("expected object removed")
	}
}

func TestMemoryStoreSignMissingKey(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.SignedURL(context.Background(), "nope"); err == nil {
		t.Error("expected error for missing object")
	}
}

func TestMemoryStoreDeleteMissingKeyIsNoError(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("delete of missing key should succeed, got %v", err)
	}
}
