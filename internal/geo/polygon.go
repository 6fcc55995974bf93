package geo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// The authority transmits geofence polygons as an ordered list of
// [lat, lng] pairs, and the replica store persists them as the flat
// textual form "[[lat,lng],[lat,lng],...]". ParsePolygon and EncodePairs
// are the two directions of that codec; parse-then-encode is lossless at
// the vertex level.

// ParsePolygon decodes the flat pair encoding into a go-geom polygon.
// Vertices are stored (lng, lat) to match go-geom's X/Y order. The ring is
// left exactly as transmitted; containment tests close it implicitly.
func ParsePolygon(raw string) (*geom.Polygon, error) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, fmt.Errorf("malformed polygon encoding: %w", err)
	}
	if len(pairs) < 3 {
		return nil, errors.New("polygon needs at least 3 vertices")
	}

	ring := make([]geom.Coord, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("polygon vertex has %d components, want 2", len(p))
		}
		ring = append(ring, geom.Coord{p[1], p[0]})
	}

	poly := geom.NewPolygon(geom.XY)
	if _, err := poly.SetCoords([][]geom.Coord{ring}); err != nil {
		return nil, err
	}
	return poly, nil
}

// EncodePairs renders [lat, lng] vertex pairs back to the flat textual
// encoding used in the replica store.
func EncodePairs(pairs [][]float64) (string, error) {
	b, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodePolygon is the inverse of ParsePolygon: it renders the polygon's
// outer ring back to the flat [lat, lng] pair encoding.
func EncodePolygon(poly *geom.Polygon) (string, error) {
	if poly == nil || poly.NumLinearRings() == 0 {
		return "", errors.New("empty polygon")
	}
	coords := poly.LinearRing(0).Coords()
	pairs := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pairs = append(pairs, []float64{c.Y(), c.X()})
	}
	return EncodePairs(pairs)
}

// ToGeoJSON renders a polygon as a GeoJSON geometry, for map overlays in
// the terminal UI.
func ToGeoJSON(poly *geom.Polygon) (string, error) {
	b, err := gjson.Marshal(poly)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
