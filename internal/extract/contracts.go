// Package extract parses structured product data out of normalized PDS
// text: product name, revision, approvals and the typical-properties table.
// Every extractor is a pure function with an ordered fallback chain; a
// field that cannot be parsed comes back absent or empty, never as an
// error.
package extract

import "context"

// PropertyRow is one parsed row of the typical-properties table. Ordinals
// are reassigned densely 1..N after parsing, in emitted row order.
type PropertyRow struct {
	Ordinal      int    `json:"ordinal"`
	PropertyName string `json:"property_name"`
	TestMethod   string `json:"test_method,omitempty"`
	Value        string `json:"value"`
}

// Record is the extraction output for one document. It is built once per
// extraction call and not mutated afterwards.
type Record struct {
	DocumentID  string        `json:"document_id"`
	ProductName string        `json:"product_name,omitempty"`
	Version     string        `json:"version,omitempty"`
	Approvals   []string      `json:"approvals"`
	Properties  []PropertyRow `json:"properties"`
}

// PageSource supplies raw per-page text for a document identifier.
// Implementations must preserve page count and order; unreadable pages
// contribute empty strings rather than being dropped.
type PageSource interface {
	Pages(ctx context.Context, documentID string) ([]string, error)
}

// TitleSource is optionally implemented by page sources that can surface a
// document metadata title. An empty string means no title is available.
type TitleSource interface {
	Title(ctx context.Context, documentID string) string
}
