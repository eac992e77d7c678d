package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pdstext"
)

// Extractor runs the full field-extraction pipeline over one document.
type Extractor struct {
	src    PageSource
	logger *slog.Logger
}

func NewExtractor(src PageSource, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{src: src, logger: logger}
}

// Extract always returns a complete record for documentID. Upstream
// failures (unreadable document, empty page text) degrade to absent or
// empty fields instead of aborting.
func (e *Extractor) Extract(ctx context.Context, documentID string) Record {
	pages, err := e.src.Pages(ctx, documentID)
	if err != nil {
		e.logger.Warn("page text unavailable", "document_id", documentID, "error", err)
		pages = nil
	}
	text := pdstext.Normalize(pages)

	title := ""
	if ts, ok := e.src.(TitleSource); ok {
		title = ts.Title(ctx, documentID)
	}

	rec := Record{
		DocumentID:  documentID,
		ProductName: ProductName(text, title, documentID),
		Approvals:   Approvals(text),
		Properties:  Properties(text),
	}
	if v, ok := Version(text); ok {
		rec.Version = v
	}

	e.logger.Debug("extraction complete",
		"document_id", documentID,
		"product", rec.ProductName,
		"approvals", len(rec.Approvals),
		"properties", len(rec.Properties),
	)
	return rec
}

var spaceRE = regexp.MustCompile(`\s+`)

// collapse trims s and squeezes internal whitespace to single spaces.
func collapse(s string) string {
	return spaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}
