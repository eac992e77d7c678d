// Package pdfsource reads per-page text and metadata from PDF files on
// disk. The document identifier is the file path.
package pdfsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Source implements extract.PageSource and extract.TitleSource over the
// PDF text layer.
type Source struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{logger: logger}
}

// Pages returns the text of every page in order. Page count and order are
// preserved: a page whose text cannot be decoded contributes an empty
// string instead of being dropped.
func (s *Source) Pages(ctx context.Context, path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		text := s.pageText(r, i)
		if text == "" {
			s.logger.Debug("page text unavailable", "path", path, "page", i)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pageText decodes one page, absorbing both errors and panics; the
// underlying reader panics on some malformed content streams.
func (s *Source) pageText(r *pdf.Reader, n int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	page := r.Page(n)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// Title returns the PDF metadata title, or "" when the document carries
// none or cannot be opened.
func (s *Source) Title(ctx context.Context, path string) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	f, r, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	t := info.Key("Title")
	if t.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(t.Text())
}
