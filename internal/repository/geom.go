package repository

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// pointEWKB encodes a WGS84 point as EWKB with SRID 4326.
// PostGIS expects longitude first.
func pointEWKB(lat, lon float64) ([]byte, error) {
	p := geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(4326)
	data, err := ewkb.Marshal(p, ewkb.NDR)
	if err != nil {
		return nil, fmt.Errorf("repository: encode point: %w", err)
	}
	return data, nil
}
