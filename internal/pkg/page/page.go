package page

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the canonical paginated result. Every list endpoint of the upstream
// HR core is normalized into this shape regardless of what the wire carried.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// envelope mirrors the upstream list envelope. The backend is inconsistent:
// items may arrive under "items" or "data", metadata may be missing entirely,
// and total_pages shows up in both snake and camel case.
type envelope[T any] struct {
	Items         []T  `json:"items"`
	Data          []T  `json:"data"`
	Total         *int `json:"total"`
	Page          *int `json:"page"`
	Limit         *int `json:"limit"`
	TotalPages    *int `json:"total_pages"`
	TotalPagesAlt *int `json:"totalPages"`
}

// Normalize builds a Page[T] from a raw list response body.
//
// A bare JSON array is treated as the full unpaginated result. An envelope is
// trusted when it carries totals; otherwise the page count is estimated from
// the requested page and limit: a full page means at least one more page
// exists, a short (or empty) page means this is the last one. The estimate
// trades exact counts for a correct "is there a next page" signal.
func Normalize[T any](raw json.RawMessage, requestedPage, requestedLimit int) (Page[T], error) {
	if requestedPage < 1 {
		requestedPage = 1
	}
	if requestedLimit < 1 {
		requestedLimit = 1
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return Page[T]{Items: []T{}, Page: 1, Limit: 0, TotalPages: 1}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("failed to decode list response: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		return Page[T]{
			Items:      items,
			Total:      len(items),
			Page:       1,
			Limit:      len(items),
			TotalPages: 1,
		}, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Page[T]{}, fmt.Errorf("failed to decode list envelope: %w", err)
	}

	items := env.Items
	if items == nil {
		items = env.Data
	}
	if items == nil {
		items = []T{}
	}

	p := Page[T]{Items: items, Page: requestedPage, Limit: requestedLimit}
	if env.Page != nil {
		p.Page = *env.Page
	}
	if env.Limit != nil {
		p.Limit = *env.Limit
	}

	totalPages := env.TotalPages
	if totalPages == nil {
		totalPages = env.TotalPagesAlt
	}

	if env.Total != nil || totalPages != nil {
		if env.Total != nil {
			p.Total = *env.Total
		}
		if totalPages != nil {
			p.TotalPages = *totalPages
		} else if p.Limit > 0 {
			p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
		}
		return p, nil
	}

	// No metadata at all: estimate. A full page means the backend probably has
	// more; a short page (including an empty one) closes out the count.
	if len(items) == requestedLimit && len(items) > 0 {
		p.TotalPages = requestedPage + 1
		p.Total = requestedPage * requestedLimit
	} else {
		p.TotalPages = requestedPage
		p.Total = (requestedPage-1)*requestedLimit + len(items)
	}

	return p, nil
}

// HasNext reports whether another page is (or is estimated to be) available.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Map converts a Page[T] into a Page[U] with the same metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}
