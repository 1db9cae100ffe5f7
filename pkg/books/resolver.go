package books

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"bookgpt-be/pkg/recommend"
	"bookgpt-be/pkg/store"
)

// DefaultAffiliateTag is used when no Amazon associate tag is configured.
const DefaultAffiliateTag = "bookgpt-20"

const maxConcurrentResolves = 4

// Catalog is the narrow surface the resolver needs; *Client satisfies it.
type Catalog interface {
	Search(ctx context.Context, query string, maxResults int) []Summary
	GetVolume(ctx context.Context, volumeID string) *Detail
}

// Resolver turns recommendation ideas into verified book records.
type Resolver struct {
	catalog      Catalog
	affiliateTag string
}

func NewResolver(catalog Catalog, affiliateTag string) *Resolver {
	if affiliateTag == "" {
		affiliateTag = DefaultAffiliateTag
	}
	return &Resolver{catalog: catalog, affiliateTag: affiliateTag}
}

// ResolveOne resolves a single idea, or nil when any step comes up empty
// (no search hit, no volume id, no details).
func (r *Resolver) ResolveOne(ctx context.Context, idea recommend.Idea) *store.BookRecord {
	query := strings.TrimSpace(idea.Title + " " + idea.Author)

	hits := r.catalog.Search(ctx, query, 1)
	if len(hits) == 0 {
		return nil
	}
	volumeID := hits[0].ID
	if volumeID == "" {
		return nil
	}

	detail := r.catalog.GetVolume(ctx, volumeID)
	if detail == nil {
		return nil
	}

	reasoning := idea.Reasoning
	if reasoning == "" {
		reasoning = "No specific reason provided."
	}

	record := &store.BookRecord{
		ID:          detail.ID,
		Title:       detail.Title,
		Authors:     detail.Authors,
		Description: detail.Description,
		Thumbnail:   detail.Thumbnail,
		ISBN13:      detail.ISBN13,
		Categories:  detail.Categories,
		Reasoning:   reasoning,
	}
	if detail.ISBN13 != "" {
		record.AmazonLink = AffiliateLink(detail.ISBN13, r.affiliateTag)
	}
	return record
}

// ResolveAll resolves ideas concurrently with bounded parallelism. The
// result preserves the input order; unresolvable ideas are dropped.
func (r *Resolver) ResolveAll(ctx context.Context, ideas []recommend.Idea) []store.BookRecord {
	resolved := make([]*store.BookRecord, len(ideas))

	sem := make(chan struct{}, maxConcurrentResolves)
	var wg sync.WaitGroup

	for i, idea := range ideas {
		wg.Add(1)
		go func(i int, idea recommend.Idea) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			resolved[i] = r.ResolveOne(ctx, idea)
		}(i, idea)
	}
	wg.Wait()

	records := make([]store.BookRecord, 0, len(ideas))
	for _, rec := range resolved {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

// AffiliateLink builds a search-style Amazon URL embedding the ISBN and the
// associate tag. Search URLs are more reliable than direct product links.
func AffiliateLink(isbn13, tag string) string {
	return fmt.Sprintf("https://www.amazon.com/s?k=%s&tag=%s", isbn13, tag)
}
