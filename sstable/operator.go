package sstable

// uint32 vector summation
func Uint32VectorSum(data []uint32) uint32 {
	sum := uint32(0)
	for _, d := range data {
		sum += d
	}
	return sum
}

// float64 vector summation
func Float64VectorSum(data []float64) float64 {
	sum := float64(0.0)
	for _, d := range data {
		sum += d
	}
	return sum
}
