package proj

import (
	"math"

	"github.com/omniscale/osmview/geom"
)

const pole = 6378137 * math.Pi // 20037508.342789244

func WgsToMerc(long, lat float64) (x, y float64) {
	x = long * pole / 180.0
	y = math.Log(math.Tan((90.0+lat)*math.Pi/360.0)) / math.Pi * pole
	return x, y
}

func MercToWgs(x, y float64) (long, lat float64) {
	long = 180.0 * x / pole
	lat = 180.0 / math.Pi * (2*math.Atan(math.Exp((y/pole)*math.Pi)) - math.Pi/2)
	return long, lat
}

// GeometryToMerc projects a materialized geometry in place to spherical
// mercator. Point coordinates keep their field names, Long/MinLong carry
// x and Lat/MinLat carry y afterwards.
func GeometryToMerc(g *geom.Geometry) {
	for i, p := range g.Points {
		x, y := WgsToMerc(p.Long, p.Lat)
		g.Points[i].Long, g.Points[i].Lat = x, y
	}
	if g.Kind == geom.RECT {
		g.Bounds.MinLong, g.Bounds.MinLat = WgsToMerc(g.Bounds.MinLong, g.Bounds.MinLat)
		g.Bounds.MaxLong, g.Bounds.MaxLat = WgsToMerc(g.Bounds.MaxLong, g.Bounds.MaxLat)
	}
}
