package simulator

// Region is a geographic area used as a coarse proxy for tectonic activity.
type Region interface {
	Name() string
	Contains(lat, lng float64) bool
}

// BoundingBox is an axis-aligned rectangle with open bounds: points on an
// edge are outside.
type BoundingBox struct {
	Label  string  `json:"name"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

func (b BoundingBox) Name() string {
	return b.Label
}

func (b BoundingBox) Contains(lat, lng float64) bool {
	return lng > b.MinLng && lng < b.MaxLng && lat > b.MinLat && lat < b.MaxLat
}

var (
	PacificRingOfFire = BoundingBox{Label: "Pacific Ring of Fire", MinLat: -60, MaxLat: 70, MinLng: -180, MaxLng: -65}
	AlpideBelt        = BoundingBox{Label: "Alpide belt", MinLat: 20, MaxLat: 45, MinLng: -10, MaxLng: 150}
	MidAtlanticRidge  = BoundingBox{Label: "Mid-Atlantic ridge", MinLat: -60, MaxLat: 70, MinLng: -45, MaxLng: -25}
)

// SeismicZones is the fixed zone set; the zones overlap freely.
var SeismicZones = []Region{PacificRingOfFire, AlpideBelt, MidAtlanticRidge}

// InSeismicZone reports whether the coordinate lies in the union of zones.
func InSeismicZone(zones []Region, lat, lng float64) bool {
	for _, z := range zones {
		if z.Contains(lat, lng) {
			return true
		}
	}
	return false
}
