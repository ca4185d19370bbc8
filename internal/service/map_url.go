package service

import (
	"net/url"
	"strings"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

const mapsSearchURL = "https://www.google.com/maps/search/?api=1"

// MapURL builds the Google Maps search link for a record.
// Resolution priority is place ID, then plus code, then address.
func MapURL(rec models.ShopRecord) string {
	q := rec.Name + " " + rec.Address
	if rec.PlusCode != "" {
		q = rec.Name + " " + rec.PlusCode
	}

	link := mapsSearchURL + "&query=" + escapeQuery(q)
	if rec.PlaceID != "" {
		link += "&query_place_id=" + escapeQuery(rec.PlaceID)
	}
	return link
}

// escapeQuery percent-encodes s, spaces as %20 rather than '+'.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
