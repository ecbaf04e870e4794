package fetcher

import (
	"encoding/csv"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/vendor-scout/internal/model"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// LoadMarkets reads a market list from a CSV or XLSX file. Accepted row
// shapes: "Name,URL" (with or without a header row) or a bare URL per row,
// in which case a display name is derived from the host. Lines starting
// with # are comments.
func LoadMarkets(path string) ([]model.Market, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadMarketsCSV(path)
	case ".xlsx":
		return loadMarketsXLSX(path)
	default:
		return nil, eris.Errorf("fetcher: unsupported market list format %q", filepath.Ext(path))
	}
}

func loadMarketsCSV(path string) ([]model.Market, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open market list")
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comment = '#'

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: read market csv")
		}
		rows = append(rows, record)
	}

	return marketsFromRows(rows)
}

func loadMarketsXLSX(path string) ([]model.Market, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("fetcher: xlsx has no sheets")
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		rows = append(rows, cells)
	}

	return marketsFromRows(rows)
}

func marketsFromRows(rows [][]string) ([]model.Market, error) {
	var markets []model.Market

	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}

		var name, rawURL string
		switch {
		case len(row) >= 2 && strings.TrimSpace(row[1]) != "":
			name = strings.TrimSpace(row[0])
			rawURL = strings.TrimSpace(row[1])
		case len(row) >= 1 && strings.TrimSpace(row[0]) != "":
			rawURL = strings.TrimSpace(row[0])
		default:
			continue
		}

		if strings.HasPrefix(rawURL, "#") {
			continue
		}
		if name == "" {
			name = deriveMarketName(rawURL)
		}

		markets = append(markets, model.Market{
			ID:   len(markets) + 1,
			Name: name,
			URL:  rawURL,
		})
	}

	if len(markets) == 0 {
		return nil, eris.New("fetcher: market list is empty")
	}
	return markets, nil
}

func isHeaderRow(row []string) bool {
	for _, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "name", "market", "market name", "url", "website":
			return true
		}
	}
	return false
}

// deriveMarketName turns "https://www.springlakefarmersmarket.org" into
// "Springlakefarmersmarket" as a last-resort display name.
func deriveMarketName(rawURL string) string {
	cleaned, err := CleanURL(rawURL)
	if err != nil {
		return rawURL
	}

	u, err := url.Parse(cleaned)
	if err != nil || u.Host == "" {
		return rawURL
	}

	host := strings.TrimPrefix(u.Host, "www.")
	if i := strings.Index(host, "."); i > 0 {
		host = host[:i]
	}
	host = strings.NewReplacer("-", " ", "_", " ").Replace(host)

	return titleCaser.String(host)
}
