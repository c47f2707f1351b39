package model

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Bounds is a rectangular map viewport. All four edges are exclusive.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// Contains reports whether p lies strictly inside b.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat < b.North && p.Lat > b.South && p.Long > b.West && p.Long < b.East
}
