package wordcount

import (
	"context"
	"testing"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestProcessor_Process(t *testing.T) {
	chapters := []domain.Chapter{
		{Content: "It was a dark and stormy night."},
		{Content: "  One\n\ntwo\tthree  "},
		{Content: ""},
	}

	got, err := New().Process(context.Background(), &domain.Novel{}, chapters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{7, 3, 0}
	for i, w := range want {
		if got[i].Metadata[MetadataKey] != w {
			t.Errorf("chapter %d: expected %d words, got %v", i, w, got[i].Metadata[MetadataKey])
		}
	}
}

func TestProcessor_Name(t *testing.T) {
	if New().Name() != "wordcount" {
		t.Errorf("expected name 'wordcount', got '%s'", New().Name())
	}
}
