package books

import (
	"context"
	"strings"
	"testing"

	"bookgpt-be/pkg/recommend"
)

// fakeCatalog serves canned volumes keyed by a title substring.
type fakeCatalog struct {
	volumes map[string]Detail
}

func (f *fakeCatalog) Search(ctx context.Context, query string, maxResults int) []Summary {
	for key, vol := range f.volumes {
		if strings.Contains(strings.ToLower(query), key) {
			return []Summary{{ID: vol.ID, Title: vol.Title, Authors: vol.Authors}}
		}
	}
	return []Summary{}
}

func (f *fakeCatalog) GetVolume(ctx context.Context, volumeID string) *Detail {
	for _, vol := range f.volumes {
		if vol.ID == volumeID {
			d := vol
			return &d
		}
	}
	return nil
}

func TestResolveOne(t *testing.T) {
	catalog := &fakeCatalog{volumes: map[string]Detail{
		"dune": {
			ID:          "vol1",
			Title:       "Dune",
			Authors:     []string{"Frank Herbert"},
			Description: "Desert planet epic.",
			ISBN13:      "9780441013593",
		},
	}}
	resolver := NewResolver(catalog, "mytag-20")

	record := resolver.ResolveOne(context.Background(), recommend.Idea{
		Title:     "Dune",
		Author:    "Frank Herbert",
		Reasoning: "You like sandworms.",
	})
	if record == nil {
		t.Fatal("record = nil, want resolved book")
	}
	if record.AmazonLink != "https://www.amazon.com/s?k=9780441013593&tag=mytag-20" {
		t.Errorf("AmazonLink = %q", record.AmazonLink)
	}
	if record.Reasoning != "You like sandworms." {
		t.Errorf("Reasoning = %q", record.Reasoning)
	}
}

func TestResolveOneWithoutISBNHasNoLink(t *testing.T) {
	catalog := &fakeCatalog{volumes: map[string]Detail{
		"obscure": {ID: "vol9", Title: "Obscure Tome"},
	}}
	resolver := NewResolver(catalog, "")

	record := resolver.ResolveOne(context.Background(), recommend.Idea{Title: "Obscure Tome"})
	if record == nil {
		t.Fatal("record = nil, want resolved book")
	}
	if record.AmazonLink != "" {
		t.Errorf("AmazonLink = %q, want empty without an ISBN", record.AmazonLink)
	}
	if record.Reasoning != "No specific reason provided." {
		t.Errorf("Reasoning = %q, want placeholder", record.Reasoning)
	}
}

func TestResolveOneNoSearchHit(t *testing.T) {
	resolver := NewResolver(&fakeCatalog{}, "")

	if record := resolver.ResolveOne(context.Background(), recommend.Idea{Title: "Nothing"}); record != nil {
		t.Errorf("record = %+v, want nil", record)
	}
}

func TestResolveAllPreservesOrderAndDropsMisses(t *testing.T) {
	catalog := &fakeCatalog{volumes: map[string]Detail{
		"first":  {ID: "vol1", Title: "First", ISBN13: "1111111111111"},
		"second": {ID: "vol2", Title: "Second", ISBN13: "2222222222222"},
		"third":  {ID: "vol3", Title: "Third", ISBN13: "3333333333333"},
	}}
	resolver := NewResolver(catalog, "")

	ideas := []recommend.Idea{
		{Title: "First"},
		{Title: "Unknown Book"},
		{Title: "Second"},
		{Title: "Third"},
	}

	records := resolver.ResolveAll(context.Background(), ideas)
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if records[i].Title != want {
			t.Errorf("records[%d].Title = %q, want %q", i, records[i].Title, want)
		}
	}
}

func TestResolveAllEmptyInput(t *testing.T) {
	resolver := NewResolver(&fakeCatalog{}, "")

	if records := resolver.ResolveAll(context.Background(), nil); len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
