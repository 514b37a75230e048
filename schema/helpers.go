package schema

// Clamp01 clamps v to the [0,1] confidence band.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampScore clamps v to the [0,100] score band used for burnout scores.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ClampCapacity clamps v to the 0-10 capacity band.
func ClampCapacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
