package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/index"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pipeline/docindex"
)

type textSource struct{}

func (textSource) Pages(ctx context.Context, documentID string) ([]string, error) {
	return []string{"Valvoline Test Product\nRevision: 306/06b\n"}, nil
}

func TestSyncDownloadsAndIndexesFolder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"files": []File{
					{ID: "f1", Name: "SynPower ENV.pdf"},
					{ID: "f2", Name: "MaxLife.pdf"},
				},
			})
		case "/files/f1", "/files/f2":
			_, _ = w.Write([]byte("%PDF-1.4"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dataDir := t.TempDir()
	store := index.NewFileStore(filepath.Join(t.TempDir(), "index.json"))
	pipe := docindex.NewPipeline(extract.NewExtractor(textSource{}, nil), store, t.TempDir(), nil)
	syncer := NewSyncer(newTestClient(srv), pipe, dataDir, nil)

	items, err := syncer.Sync(context.Background(), "folder123")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Empty(t, items[0].Error)
	assert.Equal(t, filepath.Join(dataDir, "SynPower_ENV.pdf"), items[0].StoredAs)
	assert.FileExists(t, items[0].StoredAs)

	entries, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}

func TestSyncReportsPerFileDownloadFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"files": []File{
					{ID: "bad", Name: "broken.pdf"},
					{ID: "good", Name: "ok.pdf"},
				},
			})
		case "/files/good":
			_, _ = w.Write([]byte("%PDF-1.4"))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := index.NewFileStore(filepath.Join(t.TempDir(), "index.json"))
	pipe := docindex.NewPipeline(extract.NewExtractor(textSource{}, nil), store, t.TempDir(), nil)
	syncer := NewSyncer(newTestClient(srv), pipe, t.TempDir(), nil)

	items, err := syncer.Sync(context.Background(), "folder123")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].Error)
	assert.Empty(t, items[1].Error)
}
