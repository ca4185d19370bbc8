package models

import "strings"

// Field defaults applied by the normalizer.
const (
	DefaultName       = "店名なし"
	DefaultGenres     = "古着"
	DefaultHoliday    = "なし"
	DefaultPriceRange = "不明"
)

// RawRow is one input row keyed by column name. A present key means the
// source supplied the field, even when its value is empty.
type RawRow map[string]string

// Lookup returns the value for key and whether it was supplied.
func (r RawRow) Lookup(key string) (string, bool) {
	v, ok := r[key]
	return v, ok
}

// OptString carries a defaulted value together with whether the input row
// actually supplied it.
type OptString struct {
	Value    string
	Supplied bool
}

// ShopRecord is the canonical, transient form of one input row.
type ShopRecord struct {
	Name     string
	Address  string
	PlaceID  string
	PlusCode string

	Latitude       float64
	Longitude      float64
	HasCoordinates bool

	Genres      OptString
	Hours       OptString
	Holiday     OptString
	HomepageURL OptString
	SNSURL      OptString
	Description OptString
	PriceRange  OptString

	MapURL string
}

// Coordinates returns the record's coordinate pair.
func (r ShopRecord) Coordinates() Coordinates {
	return Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
}

// Shop is the persisted shop entity.
type Shop struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Genres      string  `json:"-"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PlusCode    string  `json:"plusCode"`
	HomepageURL string  `json:"homepageUrl"`
	SNSURL      string  `json:"snsUrl"`
	Hours       string  `json:"hours"`
	Holiday     string  `json:"holiday"`
	Description string  `json:"description"`
	PriceRange  string  `json:"priceRange"`
	PlaceID     string  `json:"placeId"`
	MapURL      string  `json:"map_url"`
}

// GenreList splits the comma separated genres column.
func (s Shop) GenreList() []string {
	if s.Genres == "" {
		return []string{}
	}
	parts := strings.Split(s.Genres, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// NearbyShop is a shop paired with its distance from a query point.
type NearbyShop struct {
	Shop
	DistanceMeters float64 `json:"distanceMeters"`
}

// ReconcileResult counts the outcome of one reconciliation batch.
type ReconcileResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
