// Package seed bundles the initial shop list reconciled on first start.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

//go:embed shops.yaml
var shopsYAML []byte

// Rows returns the bundled shops as raw input rows.
func Rows() ([]models.RawRow, error) {
	return Parse(shopsYAML)
}

// Parse decodes a YAML list of column/value maps.
func Parse(data []byte) ([]models.RawRow, error) {
	var entries []map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}

	rows := make([]models.RawRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, models.RawRow(e))
	}
	return rows, nil
}
