package measure

import "sort"

// Standard weights.
const (
	WeightRegular = 400
	WeightMedium  = 500
	WeightBold    = 700
)

// matchWeight picks the closest available weight the way CSS font matching
// does. available must be non-empty.
//
//   - 400..500: desired up to 500 ascending, then lighter descending,
//     then heavier than 500 ascending
//   - below 400: lighter descending, then heavier ascending
//   - above 500: heavier ascending, then lighter descending
func matchWeight(available []float64, desired float64) float64 {
	ws := append([]float64(nil), available...)
	sort.Float64s(ws)

	for _, w := range ws {
		if w == desired {
			return w
		}
	}

	lighter := func() (float64, bool) {
		for i := len(ws) - 1; i >= 0; i-- {
			if ws[i] < desired {
				return ws[i], true
			}
		}
		return 0, false
	}
	heavier := func(limit float64) (float64, bool) {
		for _, w := range ws {
			if w > desired && w <= limit {
				return w, true
			}
		}
		return 0, false
	}

	switch {
	case desired >= WeightRegular && desired <= WeightMedium:
		if w, ok := heavier(WeightMedium); ok {
			return w
		}
		if w, ok := lighter(); ok {
			return w
		}
		w, _ := heavier(ws[len(ws)-1])
		return w
	case desired < WeightRegular:
		if w, ok := lighter(); ok {
			return w
		}
		w, _ := heavier(ws[len(ws)-1])
		return w
	default:
		if w, ok := heavier(ws[len(ws)-1]); ok {
			return w
		}
		w, _ := lighter()
		return w
	}
}
