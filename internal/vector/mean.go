package vector

// defaultMeanDim is the dimension of the mean of an empty group.
const defaultMeanDim = 5

// Mean returns the element-wise mean of vs. The output dimension is the longest
// member's length; shorter members contribute 0 beyond their end. The mean of an
// empty group is the 5-dimensional zero vector.
func Mean(vs []Vector) Vector {
	if len(vs) == 0 {
		return Zero(defaultMeanDim)
	}
	dim := 0
	for _, v := range vs {
		dim = max(dim, len(v))
	}
	sums := make(Vector, dim)
	for _, v := range vs {
		for i, x := range v {
			sums[i] += x
		}
	}
	n := float64(len(vs))
	for i := range sums {
		sums[i] /= n
	}
	return sums
}

// MeanDistance returns the average Euclidean distance from each of vs to c, or 0
// for an empty slice.
func MeanDistance(vs []Vector, c Vector) float64 {
	if len(vs) == 0 {
		return 0
	}
	var total float64
	for _, v := range vs {
		total += Euclidean(v, c)
	}
	return total / float64(len(vs))
}
