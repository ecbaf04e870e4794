package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/vendor-scout/internal/config"
	"github.com/sells-group/vendor-scout/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 5, 16, 10, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:          "abc12345-6789-0000-0000-000000000000",
			Source:      "nj-markets.csv",
			MarketCount: 94,
			Status:      model.RunStatusComplete,
			Summary:     &model.RunSummary{TotalVendors: 312},
			CreatedAt:   now,
			UpdatedAt:   now.Add(2 * time.Hour),
		},
		{
			ID:          "def12345-6789-0000-0000-000000000000",
			Source:      "a-very-long-market-list-file-name-indeed.xlsx",
			MarketCount: 5,
			Status:      model.RunStatusRunning,
			CreatedAt:   now.Add(-time.Hour),
			UpdatedAt:   now.Add(-time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "SOURCE")
	assert.Contains(t, output, "abc12345")
	assert.Contains(t, output, "nj-markets.csv")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "312")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "2026-05-16 10:30")
	// Long sources are truncated for the table.
	assert.Contains(t, output, "a-very-long-market-list-fil...")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestNestDefaults(t *testing.T) {
	doc := nestDefaults(config.Defaults())

	crawl, ok := doc["crawl"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1500, crawl["fetch_delay_ms"])

	extract, ok := doc["extract"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 8000, extract["max_content_chars"])

	// Round-trips through yaml.
	payload, err := yaml.Marshal(doc)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, yaml.Unmarshal(payload, &back))
	assert.Contains(t, back, "store")
	assert.Contains(t, back, "anthropic")
}

func TestWriteAndReadResultsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	in := []*model.MarketResult{
		{
			Market:  model.Market{ID: 1, Name: "Westfield Farmers Market", URL: "https://westfieldmarket.org"},
			Vendors: []model.Vendor{{Name: "Green Acres Farm", Confidence: 0.9}},
		},
	}

	require.NoError(t, writeOutputJSON(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "  \"market\"")

	out, err := readResultsJSON(path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].Market, out[0].Market)
	assert.Equal(t, in[0].Vendors, out[0].Vendors)
}

func TestReadResultsJSONErrors(t *testing.T) {
	_, err := readResultsJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = readResultsJSON(path)
	assert.Error(t, err)
}
