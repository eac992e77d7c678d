package pdfsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, title string, pageLines [][]string) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	if title != "" {
		doc.SetTitle(title, false)
	}
	doc.SetFont("Helvetica", "", 12)
	for _, lines := range pageLines {
		doc.AddPage()
		for _, line := range lines {
			doc.Cell(0, 10, line)
			doc.Ln(12)
		}
	}
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestPagesReadsTextInOrder(t *testing.T) {
	path := writeFixture(t, "", [][]string{
		{"Valvoline SynPower ENV C2 5W-30", "Revision: 306/06b"},
		{"Typical properties"},
	})

	pages, err := New(nil).Pages(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "Valvoline SynPower")
	assert.Contains(t, pages[0], "306/06b")
	assert.Contains(t, pages[1], "Typical properties")
	assert.NotContains(t, pages[0], "Typical properties")
}

func TestTitleFromMetadata(t *testing.T) {
	path := writeFixture(t, "SynPower ENV C2 5W-30", [][]string{{"body"}})
	assert.Equal(t, "SynPower ENV C2 5W-30", New(nil).Title(context.Background(), path))
}

func TestTitleAbsent(t *testing.T) {
	path := writeFixture(t, "", [][]string{{"body"}})
	assert.Equal(t, "", New(nil).Title(context.Background(), path))
}

func TestPagesMissingFile(t *testing.T) {
	_, err := New(nil).Pages(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestPagesNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	_, err := New(nil).Pages(context.Background(), path)
	assert.Error(t, err)
}

func TestPagesContextCancellation(t *testing.T) {
	path := writeFixture(t, "", [][]string{{"body"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Pages(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, strings.Contains(err.Error(), "context"))
}
