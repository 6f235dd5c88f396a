package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "date,campaign_name,impressions,spend\n" +
		"2024-01-15,Spring Sale,10000,$250.00\n" +
		"2024-01-16,Spring Sale,12000,$300.00\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-15", rows[0]["date"])
	assert.Equal(t, "Spring Sale", rows[0]["campaign_name"])
	assert.Equal(t, "$250.00", rows[0]["spend"], "values are not normalized at ingest")
	assert.Equal(t, "12000", rows[1]["impressions"])
}

func TestParseCSVStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFdate,impressions\n2024-01-15,100\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-15", rows[0]["date"], "BOM must not corrupt the first header")
}

func TestParseCSVShortRows(t *testing.T) {
	input := "date,impressions,spend\n2024-01-15,100\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, hasSpend := rows[0]["spend"]
	assert.False(t, hasSpend, "missing trailing cell stays absent")
}

func TestParseCSVEmpty(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = ParseCSV(strings.NewReader("date,impressions\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLocalStoreFetchRows(t *testing.T) {
	dir := t.TempDir()
	key := "wh-1/meta_ads.csv"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wh-1"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "wh-1", "meta_ads.csv"),
		[]byte("date_start,impressions\n2024-01-15,100\n"), 0644))

	store := &LocalStore{Root: dir}
	rows, err := FetchRows(context.Background(), store, key)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0]["impressions"])
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store := &LocalStore{Root: t.TempDir()}
	_, err := store.Get(context.Background(), "../etc/passwd")
	require.Error(t, err)
}
