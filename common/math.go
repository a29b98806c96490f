package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. When the range is empty lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Progress is how far elapsed is through a span of length total, in [0, 1].
// An empty span counts as finished.
func Progress[T ~int64 | ~float64](elapsed, total T) float64 {
	if total <= 0 {
		return 1
	}
	return Clamp(float64(elapsed)/float64(total), 0, 1)
}
