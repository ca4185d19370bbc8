package service

import (
	"testing"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	rec := Normalize(models.RawRow{})

	assert.Equal(t, models.DefaultName, rec.Name)
	assert.Equal(t, "", rec.Address)
	assert.Equal(t, models.FallbackLatitude, rec.Latitude)
	assert.Equal(t, models.FallbackLongitude, rec.Longitude)
	assert.False(t, rec.HasCoordinates)

	assert.Equal(t, models.OptString{Value: models.DefaultGenres}, rec.Genres)
	assert.Equal(t, models.OptString{Value: models.DefaultHoliday}, rec.Holiday)
	assert.Equal(t, models.OptString{Value: models.DefaultPriceRange}, rec.PriceRange)
	assert.Equal(t, models.OptString{}, rec.Hours)
	assert.Equal(t, models.OptString{}, rec.HomepageURL)
	assert.Equal(t, models.OptString{}, rec.SNSURL)
	assert.Equal(t, models.OptString{}, rec.Description)
	assert.Empty(t, rec.MapURL)
}

func TestNormalize_TrimsIdentityFields(t *testing.T) {
	rec := Normalize(models.RawRow{
		ColName:     "  古着屋 MERRYLOU ",
		ColAddress:  "\t東京都杉並区高円寺北2-6-4 ",
		ColPlaceID:  " ChIJ7Y6CJ_2MGGARLTSfCl-Gf9w ",
		ColPlusCode: " MM4X+CW 杉並区 ",
	})

	assert.Equal(t, "古着屋 MERRYLOU", rec.Name)
	assert.Equal(t, "東京都杉並区高円寺北2-6-4", rec.Address)
	assert.Equal(t, "ChIJ7Y6CJ_2MGGARLTSfCl-Gf9w", rec.PlaceID)
	assert.Equal(t, "MM4X+CW 杉並区", rec.PlusCode)
}

func TestNormalize_Coordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat      *string
		lng      *string
		expected models.Coordinates
		parsed   bool
	}{
		{"valid pair", strp("35.7061491"), strp("139.6497929"), models.Coordinates{Latitude: 35.7061491, Longitude: 139.6497929}, true},
		{"surrounding whitespace", strp(" 34.67113 "), strp(" 135.496079"), models.Coordinates{Latitude: 34.67113, Longitude: 135.496079}, true},
		{"latitude not a number", strp("not_a_number"), strp("139.6497929"), models.FallbackCoordinates(), false},
		{"longitude not a number", strp("35.7061491"), strp("abc"), models.FallbackCoordinates(), false},
		{"latitude missing", nil, strp("139.6497929"), models.FallbackCoordinates(), false},
		{"both empty", strp(""), strp(""), models.FallbackCoordinates(), false},
		{"NaN", strp("NaN"), strp("139.6"), models.FallbackCoordinates(), false},
		{"infinite", strp("35.6"), strp("+Inf"), models.FallbackCoordinates(), false},
		{"latitude out of range", strp("135.6"), strp("35.6"), models.FallbackCoordinates(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := models.RawRow{ColName: "Flamingo 下北沢店"}
			if tt.lat != nil {
				row[ColLatitude] = *tt.lat
			}
			if tt.lng != nil {
				row[ColLongitude] = *tt.lng
			}

			rec := Normalize(row)

			assert.Equal(t, tt.expected, rec.Coordinates())
			assert.Equal(t, tt.parsed, rec.HasCoordinates)
		})
	}
}

func TestNormalize_FallbackWithoutAddress(t *testing.T) {
	rec := Normalize(models.RawRow{ColName: "N", ColLatitude: "not_a_number"})

	assert.Equal(t, 35.6812, rec.Latitude)
	assert.Equal(t, 139.7671, rec.Longitude)
}

func TestNormalize_OptionalFields(t *testing.T) {
	rec := Normalize(models.RawRow{
		ColGenres:      "",
		ColHoliday:     "  ",
		ColPriceRange:  "¥3,000 ~",
		ColHours:       "",
		ColHomepageURL: "https://jamtrading.jp/",
		ColSNSURL:      "",
		ColDescription: "国内最大級の古着屋JAMの原宿店。",
	})

	// Empty genres/holiday fall back to their defaults and count as absent.
	assert.Equal(t, models.OptString{Value: models.DefaultGenres}, rec.Genres)
	assert.Equal(t, models.OptString{Value: models.DefaultHoliday}, rec.Holiday)
	assert.Equal(t, models.OptString{Value: "¥3,000 ~", Supplied: true}, rec.PriceRange)

	// Empty hours/sns are legitimate supplied values.
	assert.Equal(t, models.OptString{Value: "", Supplied: true}, rec.Hours)
	assert.Equal(t, models.OptString{Value: "", Supplied: true}, rec.SNSURL)
	assert.Equal(t, models.OptString{Value: "https://jamtrading.jp/", Supplied: true}, rec.HomepageURL)
	assert.Equal(t, models.OptString{Value: "国内最大級の古着屋JAMの原宿店。", Supplied: true}, rec.Description)
}

func TestParseCoordinates(t *testing.T) {
	coords, err := ParseCoordinates("43.0572281", "141.3516235")
	assert.NoError(t, err)
	assert.Equal(t, models.Coordinates{Latitude: 43.0572281, Longitude: 141.3516235}, coords)

	_, err = ParseCoordinates("43.05", "")
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func strp(s string) *string { return &s }
