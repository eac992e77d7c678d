// Package docindex is the extract-validate-index pipeline run for every
// stored document, whether it arrived by upload, Drive sync, watcher event
// or CLI call.
package docindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/index"
)

type Pipeline struct {
	Extractor *extract.Extractor
	Index     index.Store
	ParsedDir string
	Logger    *slog.Logger
}

// Result is the pipeline outcome for one document.
type Result struct {
	Record      extract.Record
	DisplayName string
	ParsedPath  string
}

func NewPipeline(ex *extract.Extractor, store index.Store, parsedDir string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Extractor: ex, Index: store, ParsedDir: parsedDir, Logger: logger}
}

// Run extracts the document at path, validates the record against the
// schema, caches the parsed JSON, and indexes the display name (product
// name when extracted, filename stem otherwise).
func (p *Pipeline) Run(ctx context.Context, path string) (Result, error) {
	rec := p.Extractor.Extract(ctx, path)

	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode record: %w", err)
	}
	if err := extract.ValidateRecordJSON(b); err != nil {
		return Result{}, fmt.Errorf("record failed schema validation: %w", err)
	}

	parsedPath := ""
	if p.ParsedDir != "" {
		if err := os.MkdirAll(p.ParsedDir, 0o755); err != nil {
			return Result{}, fmt.Errorf("create parsed dir: %w", err)
		}
		parsedPath = filepath.Join(p.ParsedDir, constants.FileStem(path)+".json")
		if err := os.WriteFile(parsedPath, b, 0o644); err != nil {
			return Result{}, fmt.Errorf("cache parsed record: %w", err)
		}
	}

	name := strings.TrimSpace(rec.ProductName)
	if name == "" {
		name = constants.FileStem(path)
	}
	if p.Index != nil {
		if err := p.Index.Put(ctx, name, path); err != nil {
			return Result{}, fmt.Errorf("index put: %w", err)
		}
	}

	p.Logger.Info("docindex.ok",
		"document", path,
		"product", name,
		"approvals", len(rec.Approvals),
		"properties", len(rec.Properties),
	)
	return Result{Record: rec, DisplayName: name, ParsedPath: parsedPath}, nil
}
