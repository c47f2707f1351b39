package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds_Contains(t *testing.T) {
	b := Bounds{North: 50, South: 49, East: -122, West: -124}

	tests := []struct {
		name string
		p    GeoPoint
		want bool
	}{
		{"strictly inside", GeoPoint{Lat: 49.5, Long: -123}, true},
		{"on north edge", GeoPoint{Lat: 50, Long: -123}, false},
		{"on south edge", GeoPoint{Lat: 49, Long: -123}, false},
		{"on east edge", GeoPoint{Lat: 49.5, Long: -122}, false},
		{"on west edge", GeoPoint{Lat: 49.5, Long: -124}, false},
		{"outside latitude only", GeoPoint{Lat: 51, Long: -123}, false},
		{"outside longitude only", GeoPoint{Lat: 49.5, Long: -120}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.p))
		})
	}
}

func TestProject_TagNamesAndOwnership(t *testing.T) {
	p := Project{UserID: 7, Tags: []Tag{{Name: "glass art"}, {Name: "hardware"}}}

	assert.Equal(t, []string{"glass art", "hardware"}, p.TagNames())
	assert.True(t, p.OwnedBy(7))
	assert.False(t, p.OwnedBy(8))
	assert.Empty(t, (&Project{}).TagNames())
}
