package predictor

// Scaler maps (latitude, longitude, depth) into the network's unit input space
// using fixed bounds. Values are not clamped.
type Scaler struct {
	Min [InputFeatures]float64
	Max [InputFeatures]float64
}

var DefaultScaler = Scaler{
	Min: [InputFeatures]float64{-90, -180, 0},
	Max: [InputFeatures]float64{90, 180, 700},
}

func (s Scaler) Normalize(lat, lng, depth float64) [InputFeatures]float64 {
	in := [InputFeatures]float64{lat, lng, depth}
	var out [InputFeatures]float64
	for i, v := range in {
		out[i] = (v - s.Min[i]) / (s.Max[i] - s.Min[i])
	}
	return out
}
