// Package importer loads shop rows from CSV files and the bundled seed list
// and reconciles them into the store.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// ErrFileNotFound is returned when the CSV path does not exist.
var ErrFileNotFound = errors.New("importer: file not found")

// ReadCSV reads a headered CSV file into raw rows.
func ReadCSV(path string) ([]models.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	return ParseCSV(f)
}

// ParseCSV decodes UTF-8 CSV with an optional byte order mark. Each row maps
// header names to cell values; cells missing from short rows are absent,
// not empty.
func ParseCSV(r io.Reader) ([]models.RawRow, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return []models.RawRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("importer: read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	rows := []models.RawRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: read row %d: %w", len(rows)+2, err)
		}

		row := make(models.RawRow, len(header))
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
