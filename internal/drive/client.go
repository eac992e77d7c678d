// Package drive lists and downloads PDFs from a Google Drive folder using
// a service account, and syncs them through the extraction pipeline.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/oauth2/google"
)

const (
	scopeReadonly  = "https://www.googleapis.com/auth/drive.readonly"
	defaultBaseURL = "https://www.googleapis.com/drive/v3"
)

// File is one Drive listing entry.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client is a thin Drive v3 REST client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a Drive client from service-account JSON credentials.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	creds, err := fixPrivateKey(credentialsJSON)
	if err != nil {
		return nil, err
	}
	cfg, err := google.JWTConfigFromJSON(creds, scopeReadonly)
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}
	return &Client{httpClient: cfg.Client(ctx), baseURL: defaultBaseURL}, nil
}

// fixPrivateKey repairs service-account JSON pasted through environment
// variables with a double-escaped private key.
func fixPrivateKey(raw []byte) ([]byte, error) {
	var info map[string]any
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode service account json: %w", err)
	}
	if pk, ok := info["private_key"].(string); ok {
		info["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
	}
	return json.Marshal(info)
}

// ListPDFs returns every non-trashed PDF in the folder, following
// pagination.
func (c *Client) ListPDFs(ctx context.Context, folderID string) ([]File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='application/pdf' and trashed=false", folderID)

	var out []File
	pageToken := ""
	for {
		u := fmt.Sprintf("%s/files?q=%s&pageSize=1000&fields=%s",
			c.baseURL, url.QueryEscape(query), url.QueryEscape("nextPageToken, files(id,name)"))
		if pageToken != "" {
			u += "&pageToken=" + url.QueryEscape(pageToken)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}
		var body struct {
			NextPageToken string `json:"nextPageToken"`
			Files         []File `json:"files"`
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("list files: status %d", resp.StatusCode)
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode file list: %w", err)
		}

		out = append(out, body.Files...)
		if body.NextPageToken == "" {
			return out, nil
		}
		pageToken = body.NextPageToken
	}
}

// Download fetches a file's content into dest, creating parent directories
// as needed.
func (c *Client) Download(ctx context.Context, fileID, dest string) error {
	u := fmt.Sprintf("%s/files/%s?alt=media", c.baseURL, url.PathEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: status %d", fileID, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return f.Close()
}

var unsafeNameRE = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName maps an arbitrary Drive file name onto a safe local filename.
func SafeName(name string) string {
	return unsafeNameRE.ReplaceAllString(name, "_")
}
