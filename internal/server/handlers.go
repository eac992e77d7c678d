package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/common"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/index"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/render"
)

// AnswerRequest references each product by stored file path, URL or
// indexed product name.
type AnswerRequest struct {
	ProductAFile string `json:"product_a_file,omitempty"`
	ProductAURL  string `json:"product_a_url,omitempty"`
	ProductAName string `json:"product_a_name,omitempty"`
	ProductBFile string `json:"product_b_file,omitempty"`
	ProductBURL  string `json:"product_b_url,omitempty"`
	ProductBName string `json:"product_b_name,omitempty"`

	Locale         string `json:"locale,omitempty"`          // "no" | "en"
	ExpectedOutput string `json:"expected_output,omitempty"` // "summary" | "comparison"
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		writeError(w, common.WrapError(common.ErrInvalidInput, "parse upload"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.WrapError(common.ErrInvalidInput, "missing file field"))
		return
	}
	defer file.Close()

	if constants.NormalizeExt(filepath.Ext(header.Filename)) != "pdf" {
		writeError(w, common.WrapError(common.ErrInvalidInput, "please upload a PDF"))
		return
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".pdf"
	dest := filepath.Join(s.cfg.Storage.DataDir, name)
	out, err := os.Create(dest)
	if err != nil {
		writeError(w, fmt.Errorf("store upload: %w", err))
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		writeError(w, fmt.Errorf("store upload: %w", err))
		return
	}
	if err := out.Close(); err != nil {
		writeError(w, fmt.Errorf("store upload: %w", err))
		return
	}

	// Index the document right away so it is resolvable by name without
	// waiting for a watcher pass.
	if _, err := s.pipe.Run(r.Context(), dest); err != nil {
		s.logger.Warn("upload.pipeline_failed", "stored_as", dest, "error", err)
	} else if s.metrics != nil {
		s.metrics.Extractions.Inc()
	}

	s.logger.Info("upload.ok", "filename", header.Filename, "stored_as", dest)
	writeJSON(w, http.StatusOK, map[string]any{"stored_as": dest})
}

func (s *Service) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.WrapError(common.ErrInvalidInput, "decode request"))
		return
	}

	pathA, err := s.resolveRef(r, req.ProductAFile, req.ProductAURL, req.ProductAName)
	if err != nil {
		writeError(w, common.WrapError(err, "product A"))
		return
	}
	recA := s.ex.Extract(r.Context(), pathA)
	if s.metrics != nil {
		s.metrics.Extractions.Inc()
	}

	wantsB := req.ProductBFile != "" || req.ProductBURL != "" || req.ProductBName != ""
	if req.ExpectedOutput != "comparison" || !wantsB {
		writeJSON(w, http.StatusOK, map[string]any{
			"reply_markdown": render.Summary(recA),
			"productA":       recA,
		})
		return
	}

	pathB, err := s.resolveRef(r, req.ProductBFile, req.ProductBURL, req.ProductBName)
	if err != nil {
		writeError(w, common.WrapError(err, "product B"))
		return
	}
	recB := s.ex.Extract(r.Context(), pathB)
	if s.metrics != nil {
		s.metrics.Extractions.Inc()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reply_markdown": render.Comparison(recA, recB, req.Locale),
		"productA":       recA,
		"productB":       recB,
	})
}

func (s *Service) handleResolve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, common.WrapError(common.ErrInvalidInput, "q is required"))
		return
	}
	documentID, err := index.Resolve(r.Context(), query, s.store)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "document_id": documentID})
}

func (s *Service) handleDriveSync(w http.ResponseWriter, r *http.Request) {
	if s.syncer == nil {
		writeError(w, common.WrapError(common.ErrInvalidInput, "drive sync is not configured"))
		return
	}
	folderID := r.URL.Query().Get("folder_id")
	if folderID == "" {
		folderID = s.cfg.Drive.FolderID
	}
	if folderID == "" {
		writeError(w, common.WrapError(common.ErrInvalidInput, "provide folder_id or set DRIVE_FOLDER_ID"))
		return
	}

	items, err := s.syncer.Sync(r.Context(), folderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SyncedFiles.Add(float64(len(items)))
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(items), "items": items})
}

func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path, err := s.exportTarget(r, q.Get("file"), q.Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}

	rec := s.ex.Extract(r.Context(), path)
	if s.metrics != nil {
		s.metrics.Extractions.Inc()
	}

	var data []byte
	filename := constants.FileStem(path) + ".xlsx"
	if q.Get("file_b") != "" || q.Get("name_b") != "" {
		pathB, err := s.exportTarget(r, q.Get("file_b"), q.Get("name_b"))
		if err != nil {
			writeError(w, err)
			return
		}
		recB := s.ex.Extract(r.Context(), pathB)
		if s.metrics != nil {
			s.metrics.Extractions.Inc()
		}
		data, err = s.exporter.ComparisonXLSX(rec, recB)
		if err != nil {
			writeError(w, err)
			return
		}
		filename = "comparison.xlsx"
	} else if data, err = s.exporter.RecordXLSX(rec); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// exportTarget maps the file/name query pair onto a document path.
func (s *Service) exportTarget(r *http.Request, file, name string) (string, error) {
	if file != "" {
		return file, nil
	}
	if name == "" {
		return "", common.WrapError(common.ErrInvalidInput, "provide file or name")
	}
	return index.Resolve(r.Context(), name, s.store)
}

// resolveRef maps a product reference to a stored document path: an
// existing file path, a URL to download, or a product name resolved
// through the index, in that order of precedence.
func (s *Service) resolveRef(r *http.Request, file, rawURL, name string) (string, error) {
	switch {
	case file != "":
		if _, err := os.Stat(file); err != nil {
			return "", common.WrapError(common.ErrInvalidInput, "file not found")
		}
		return file, nil
	case rawURL != "":
		return s.downloadPDF(r, rawURL)
	case name != "":
		return index.Resolve(r.Context(), name, s.store)
	default:
		return "", common.WrapError(common.ErrInvalidInput, "provide a file, url or name")
	}
}

// downloadPDF fetches a PDF from a URL into the data directory, sniffing
// the %PDF magic before accepting it.
func (s *Service) downloadPDF(r *http.Request, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", common.WrapError(common.ErrInvalidInput, "invalid url")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", common.WrapError(common.ErrInvalidInput, "url fetch failed")
	}
	defer resp.Body.Close()

	limit := s.cfg.Server.MaxUploadBytes
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("read url body: %w", err)
	}
	if int64(len(body)) > limit {
		return "", common.WrapError(common.ErrInvalidInput, "remote file exceeds the upload size limit")
	}
	head := body
	if len(head) > 1024 {
		head = head[:1024]
	}
	if resp.StatusCode != http.StatusOK || !bytes.Contains(head, []byte("%PDF")) {
		return "", common.WrapError(common.ErrInvalidInput, "url did not return a valid PDF")
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".pdf"
	dest := filepath.Join(s.cfg.Storage.DataDir, name)
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return "", fmt.Errorf("store download: %w", err)
	}
	return dest, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, common.HTTPStatus(err), map[string]any{"error": err.Error()})
}
