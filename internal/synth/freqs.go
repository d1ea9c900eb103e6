package synth

import "math"

// allocateFrequencies returns count frequencies spaced evenly in log space
// across [minFreq, maxFreq]. A count of 1 collapses to {minFreq}.
func allocateFrequencies(count int, minFreq, maxFreq float64) []float64 {
	if count < 1 {
		return nil
	}
	freqs := make([]float64, count)
	if count == 1 {
		freqs[0] = minFreq
		return freqs
	}
	logMin := math.Log(minFreq)
	logSpan := math.Log(maxFreq) - logMin
	for i := range freqs {
		t := float64(i) / float64(count-1)
		freqs[i] = math.Exp(logMin + t*logSpan)
	}
	return freqs
}
