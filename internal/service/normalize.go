package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// Input column names.
const (
	ColName        = "name"
	ColAddress     = "address"
	ColPlaceID     = "place_id"
	ColPlusCode    = "plus_code"
	ColLatitude    = "latitude"
	ColLongitude   = "longitude"
	ColGenres      = "genres"
	ColHours       = "hours"
	ColHoliday     = "holiday"
	ColHomepageURL = "homepage_url"
	ColSNSURL      = "sns_url"
	ColDescription = "description"
	ColPriceRange  = "price_range"
)

// Columns lists every column the normalizer understands.
var Columns = []string{
	ColName, ColAddress, ColPlaceID, ColPlusCode, ColLatitude, ColLongitude,
	ColGenres, ColHours, ColHoliday, ColHomepageURL, ColSNSURL, ColDescription, ColPriceRange,
}

// ErrInvalidCoordinates is returned by ParseCoordinates when either value is
// missing, unparsable, not finite or out of range.
var ErrInvalidCoordinates = errors.New("service: invalid coordinates")

// Normalize converts one raw row into a ShopRecord. It never fails: bad
// numeric input degrades to the fallback coordinate pair.
func Normalize(row models.RawRow) models.ShopRecord {
	rec := models.ShopRecord{
		Name:     strings.TrimSpace(row[ColName]),
		Address:  strings.TrimSpace(row[ColAddress]),
		PlaceID:  strings.TrimSpace(row[ColPlaceID]),
		PlusCode: strings.TrimSpace(row[ColPlusCode]),
	}
	if rec.Name == "" {
		rec.Name = models.DefaultName
	}

	coords, err := ParseCoordinates(row[ColLatitude], row[ColLongitude])
	if err != nil {
		coords = models.FallbackCoordinates()
	}
	rec.Latitude = coords.Latitude
	rec.Longitude = coords.Longitude
	rec.HasCoordinates = err == nil

	rec.Genres = defaulted(row, ColGenres, models.DefaultGenres)
	rec.Holiday = defaulted(row, ColHoliday, models.DefaultHoliday)
	rec.PriceRange = defaulted(row, ColPriceRange, models.DefaultPriceRange)

	rec.Hours = optional(row, ColHours)
	rec.HomepageURL = optional(row, ColHomepageURL)
	rec.SNSURL = optional(row, ColSNSURL)
	rec.Description = optional(row, ColDescription)

	return rec
}

// ParseCoordinates parses a latitude/longitude pair. Both values must be
// valid for the pair to be accepted.
func ParseCoordinates(latStr, lngStr string) (models.Coordinates, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return models.Coordinates{}, ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return models.Coordinates{}, ErrInvalidCoordinates
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return models.Coordinates{}, ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return models.Coordinates{}, ErrInvalidCoordinates
	}
	return models.Coordinates{Latitude: lat, Longitude: lng}, nil
}

// defaulted treats an empty value the same as an absent one.
func defaulted(row models.RawRow, key, def string) models.OptString {
	v, ok := row.Lookup(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return models.OptString{Value: def}
	}
	return models.OptString{Value: v, Supplied: true}
}

// optional accepts an empty value as a real value.
func optional(row models.RawRow, key string) models.OptString {
	v, ok := row.Lookup(key)
	if !ok {
		return models.OptString{}
	}
	return models.OptString{Value: strings.TrimSpace(v), Supplied: true}
}
