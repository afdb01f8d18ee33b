package classify

import "math"

// jenksBreaks partitions sorted values into numClasses contiguous groups
// minimizing the summed within-group variance (Jenks natural breaks). Dynamic
// programming over the sorted values, O(n² · k).
func jenksBreaks(sorted []float64, numClasses int) []float64 {
	n := len(sorted)
	if numClasses < 2 || n < 3 || numClasses >= n {
		// Too few values to partition meaningfully; equal intervals over the
		// observed range give the same boundaries the DP would.
		return equalIntervalBreaks(sorted, numClasses)
	}

	// lowerLimits[i][j]: index of the lowest value in class j of the optimal
	// j-partition of the first i values. varCombined[i][j]: the corresponding
	// minimal variance sum.
	lowerLimits := make([][]int, n+1)
	varCombined := make([][]float64, n+1)
	for i := 0; i <= n; i++ {
		lowerLimits[i] = make([]int, numClasses+1)
		varCombined[i] = make([]float64, numClasses+1)
	}
	for j := 1; j <= numClasses; j++ {
		lowerLimits[1][j] = 1
		for i := 2; i <= n; i++ {
			varCombined[i][j] = math.Inf(1)
		}
	}

	var variance float64
	for l := 2; l <= n; l++ {
		var sum, sumSquares, w float64
		for m := 1; m <= l; m++ {
			lowerIdx := l - m + 1
			val := sorted[lowerIdx-1]

			w++
			sum += val
			sumSquares += val * val
			variance = sumSquares - (sum*sum)/w

			if lowerIdx == 1 {
				continue
			}
			for j := 2; j <= numClasses; j++ {
				if varCombined[l][j] >= variance+varCombined[lowerIdx-1][j-1] {
					lowerLimits[l][j] = lowerIdx
					varCombined[l][j] = variance + varCombined[lowerIdx-1][j-1]
				}
			}
		}
		lowerLimits[l][1] = 1
		varCombined[l][1] = variance
	}

	breaks := make([]float64, numClasses+1)
	breaks[0] = sorted[0]
	breaks[numClasses] = sorted[n-1]

	k := n
	for j := numClasses; j >= 2; j-- {
		id := lowerLimits[k][j] - 2
		breaks[j-1] = sorted[id]
		k = lowerLimits[k][j] - 1
	}
	return breaks
}
