package drive

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pipeline/docindex"
)

// Syncer downloads every PDF in a Drive folder into the data directory and
// runs each through the extraction pipeline. Files are always overwritten;
// the pipeline is idempotent per path.
type Syncer struct {
	client  *Client
	pipe    *docindex.Pipeline
	dataDir string
	logger  *slog.Logger
}

// SyncItem reports the outcome for one Drive file.
type SyncItem struct {
	Name     string `json:"name"`
	StoredAs string `json:"stored_as"`
	Error    string `json:"error,omitempty"`
}

func NewSyncer(client *Client, pipe *docindex.Pipeline, dataDir string, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{client: client, pipe: pipe, dataDir: dataDir, logger: logger}
}

// Sync lists the folder and processes every PDF. Per-file failures are
// reported in the item list; only listing failures abort the run.
func (s *Syncer) Sync(ctx context.Context, folderID string) ([]SyncItem, error) {
	files, err := s.client.ListPDFs(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list drive folder: %w", err)
	}
	s.logger.Info("drive.sync.start", "folder_id", folderID, "files", len(files))

	items := make([]SyncItem, 0, len(files))
	for _, f := range files {
		local := filepath.Join(s.dataDir, SafeName(f.Name))
		if err := s.client.Download(ctx, f.ID, local); err != nil {
			s.logger.Warn("drive.sync.download_failed", "file", f.Name, "error", err)
			items = append(items, SyncItem{Name: f.Name, Error: err.Error()})
			continue
		}
		res, err := s.pipe.Run(ctx, local)
		if err != nil {
			s.logger.Warn("drive.sync.pipeline_failed", "file", f.Name, "error", err)
			items = append(items, SyncItem{Name: f.Name, StoredAs: local, Error: err.Error()})
			continue
		}
		items = append(items, SyncItem{Name: res.DisplayName, StoredAs: local})
	}
	s.logger.Info("drive.sync.ok", "folder_id", folderID, "items", len(items))
	return items, nil
}
