// Package export writes result bundles to local JSON and CSV files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"rankscraper/report"
	"rankscraper/scan"
)

// Writer writes bundle files into an output directory.
type Writer struct {
	outputDir string
}

// New creates a Writer, making the output directory if needed.
func New(outputDir string) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %v", err)
	}
	return &Writer{outputDir: outputDir}, nil
}

// WriteBundle writes the whole bundle as one JSON document named after the
// source URL.
func (w *Writer) WriteBundle(bundle *scan.Bundle) (string, error) {
	name := sanitizeFilename(bundle.Meta.URL)
	path := filepath.Join(w.outputDir, name+".json")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		return "", fmt.Errorf("failed to encode bundle: %v", err)
	}
	return path, nil
}

// WriteCompetitorsCSV writes the competitor rows in source order.
func (w *Writer) WriteCompetitorsCSV(bundle *scan.Bundle) (string, error) {
	path := filepath.Join(w.outputDir, sanitizeFilename(bundle.Meta.URL)+"_competitors.csv")
	header := []string{"name", "rating", "reviews", "address", "categories", "website", "photos", "claim_status", "locations", "average_rank", "map_url", "cid"}

	rows := make([][]string, 0, len(bundle.Competitors))
	for _, c := range bundle.Competitors {
		rows = append(rows, []string{
			c.Name, c.Rating, c.Reviews, c.Address, c.Categories, c.Website,
			c.Photos, c.ClaimStatus, c.Locations, c.AverageRank, c.MapURL, c.CID,
		})
	}
	return path, writeCSV(path, header, rows)
}

// WritePinsCSV writes the normalized map pins. Absent coordinates become
// empty cells, never zeros.
func (w *Writer) WritePinsCSV(bundle *scan.Bundle) (string, error) {
	path := filepath.Join(w.outputDir, sanitizeFilename(bundle.Meta.URL)+"_pins.csv")
	header := []string{"lat", "lon", "label", "title", "url", "color", "cid", "search_guid", "pid"}

	rows := make([][]string, 0, len(bundle.Pins))
	for _, p := range bundle.Pins {
		rows = append(rows, []string{
			coordCell(p.Lat), coordCell(p.Lon), p.Label, p.Title, p.URL,
			p.Color, p.CID, p.SearchGUID, p.PID,
		})
	}
	return path, writeCSV(path, header, rows)
}

// WriteSummaryCSV writes the scan-info and rank-summary fields as key/value
// rows with stable ordering.
func (w *Writer) WriteSummaryCSV(bundle *scan.Bundle) (string, error) {
	path := filepath.Join(w.outputDir, sanitizeFilename(bundle.Meta.URL)+"_summary.csv")

	var rows [][]string
	for _, record := range []report.FieldRecord{bundle.ScanInfo, bundle.RankSummary} {
		keys := maps.Keys(record)
		sort.Strings(keys)
		for _, key := range keys {
			rows = append(rows, []string{key, record[key]})
		}
	}
	return path, writeCSV(path, []string{"field", "value"}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %v", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func coordCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// sanitizeFilename creates a safe filename from a report URL.
func sanitizeFilename(url string) string {
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "www.")

	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " ", "&", "="}
	for _, char := range unsafe {
		url = strings.ReplaceAll(url, char, "_")
	}
	if url == "" {
		url = "report"
	}
	return url
}
