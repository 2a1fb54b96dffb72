package parser

var float64pow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
	1e20, 1e21, 1e22,
}

var float32pow10 = [...]float32{1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10}

// fast64 is Clinger's fast path: when man and 10^|exp10| are both exact
// float64 values, one multiplication or division is correctly rounded.
func fast64(man uint64, exp10 int64, neg bool) (float64, bool) {
	if man>>53 != 0 || exp10 < -22 || exp10 > 22 {
		return 0, false
	}
	f := float64(man)
	if neg {
		f = -f
	}
	if exp10 < 0 {
		return f / float64pow10[-exp10], true
	}
	return f * float64pow10[exp10], true
}

func fast32(man uint64, exp10 int64, neg bool) (float32, bool) {
	if man>>24 != 0 || exp10 < -10 || exp10 > 10 {
		return 0, false
	}
	f := float32(man)
	if neg {
		f = -f
	}
	if exp10 < 0 {
		return f / float32pow10[-exp10], true
	}
	return f * float32pow10[exp10], true
}
