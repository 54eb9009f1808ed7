package catalog

import (
	"math"
	"sort"

	"github.com/hbui/cinecli/internal/models"
)

const earthRadiusKm = 6371

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }

// Distance returns the great-circle distance in kilometers between two
// coordinates, by the haversine formula.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// TheaterDistance pairs a theater with its distance from a reference point.
type TheaterDistance struct {
	Theater models.Theater
	Km      float64
}

// Nearby filters theaters to those within radiusKm of the coordinate and
// returns them closest first. Theaters without coordinates are skipped.
func Nearby(theaters []models.Theater, lat, lng, radiusKm float64) []TheaterDistance {
	var out []TheaterDistance
	for _, t := range theaters {
		tLat, ok := t.Lat()
		if !ok {
			continue
		}
		tLng, _ := t.Lng()
		km := Distance(lat, lng, tLat, tLng)
		if km <= radiusKm {
			out = append(out, TheaterDistance{Theater: t, Km: km})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Km < out[j].Km })
	return out
}
