// Package routegeojson converts route geometries to and from GeoJSON.
// Coordinates follow GeoJSON order: longitude first.
package routegeojson

import (
	"fmt"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Marshal encodes g as a GeoJSON LineString.
func Marshal(g kernel.RouteGeometry) ([]byte, error) {
	waypoints := g.Waypoints()
	coords := make([]geom.Coord, 0, len(waypoints))
	for _, wp := range waypoints {
		coords = append(coords, geom.Coord{wp.Lng(), wp.Lat()})
	}

	ls, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}
	return geojson.Marshal(ls)
}

// Unmarshal decodes a LineString or MultiLineString. The parts of a
// MultiLineString are joined in order.
func Unmarshal(data []byte) (kernel.RouteGeometry, error) {
	var g geom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		return kernel.RouteGeometry{}, errs.NewValueIsInvalidErrorWithCause("route geometry", err)
	}

	var coords []geom.Coord
	switch t := g.(type) {
	case *geom.LineString:
		coords = t.Coords()
	case *geom.MultiLineString:
		for i := range t.NumLineStrings() {
			coords = append(coords, t.LineString(i).Coords()...)
		}
	default:
		return kernel.RouteGeometry{}, errs.NewValueIsInvalidErrorWithCause("route geometry",
			fmt.Errorf("unsupported geometry type %T", g))
	}

	points := make([]kernel.GeoPoint, 0, len(coords))
	for _, c := range coords {
		p, err := kernel.NewGeoPoint(c.Y(), c.X())
		if err != nil {
			return kernel.RouteGeometry{}, err
		}
		points = append(points, p)
	}
	return kernel.NewRouteGeometry(points)
}
