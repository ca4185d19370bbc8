package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.RawRow
	}{
		{
			name:  "plain header",
			input: "name,address,latitude,longitude\nJAM,東京都渋谷区,35.66,139.70\n",
			expected: []models.RawRow{
				{"name": "JAM", "address": "東京都渋谷区", "latitude": "35.66", "longitude": "139.70"},
			},
		},
		{
			name:  "byte order mark is stripped",
			input: "\ufeffname,hours\nKAI,13:00 - 20:00\n",
			expected: []models.RawRow{
				{"name": "KAI", "hours": "13:00 - 20:00"},
			},
		},
		{
			name:  "short row leaves columns absent",
			input: "name,address,genres\nKAI,川口市\n",
			expected: []models.RawRow{
				{"name": "KAI", "address": "川口市"},
			},
		},
		{
			name:  "empty cell is present",
			input: "name,sns_url\nKAI,\n",
			expected: []models.RawRow{
				{"name": "KAI", "sns_url": ""},
			},
		},
		{
			name:     "header only",
			input:    "name,address\n",
			expected: []models.RawRow{},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []models.RawRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rows)
		})
	}
}

func TestParseCSV_Malformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name,address\n\"unterminated,x\n"))
	assert.Error(t, err)
}

func TestReadCSV_FileNotFound(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shops.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffname,address\n古着83,東京都北区\n"), 0o600))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []models.RawRow{{"name": "古着83", "address": "東京都北区"}}, rows)
}
