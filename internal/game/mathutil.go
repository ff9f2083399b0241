package game

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

// jitter hashes seed into two values in [-1, 1).
func jitter(seed uint64) (float64, float64) {
	seed ^= seed >> 33
	seed *= 0xff51afd7ed558ccd
	seed ^= seed >> 33
	seed *= 0xc4ceb9fe1a85ec53
	seed ^= seed >> 33
	x := float64(seed>>40)/(1<<23) - 1
	y := float64(seed&(1<<24-1))/(1<<23) - 1
	return x, y
}
