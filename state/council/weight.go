package council

// Weight maps token power to a signer weight: floor(log10(max(tp, 2) - 1) + 1). The floor of
// a base-10 logarithm plus one is the decimal digit count, which is computed exactly here
// instead of through floating point (math.Log10 drifts below integers at powers of ten).
func Weight(tokenPower int64) uint32 {
	if tokenPower < 2 {
		tokenPower = 2
	}
	n := tokenPower - 1
	var digits uint32 = 1
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits
}
