// Package confidence derives statistical-significance reports from a
// simulation's merged statistics: a Student's-t confidence interval around
// the mean, and a Welch's t-test/Cohen's d comparison between two runs.
package confidence

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a [Low, High] confidence interval around a mean.
type Interval struct {
	Low  float64
	High float64
}

// EV computes a level confidence interval (e.g. 0.95) around mean given
// its sample standard deviation and sample size, via the t-distribution.
// It never mutates the accumulator it was derived from.
func EV(mean, stddev float64, n int, level float64) Interval {
	if n <= 1 {
		return Interval{Low: mean, High: mean}
	}
	se := stddev / math.Sqrt(float64(n))
	t := distuv.StudentsT{Nu: float64(n - 1), Mu: 0, Sigma: 1}
	tCritical := t.Quantile(1 - (1-level)/2)
	margin := tCritical * se
	return Interval{Low: mean - margin, High: mean + margin}
}

// Comparison is a Welch's t-test between two independent samples (two
// simulation runs under different rules/strategies), plus Cohen's d effect
// size, used by the `compare` subcommand.
type Comparison struct {
	Difference float64
	StdError   float64
	TStatistic float64
	PValue     float64
	CohensD    float64
	DF         float64
	Significant bool
}

// Compare runs a two-sample Welch's t-test (unequal variances) comparing
// (meanA, stddevA, nA) against (meanB, stddevB, nB), significant at the
// given alpha (e.g. 0.05 for 95% confidence).
func Compare(meanA, stddevA float64, nA int, meanB, stddevB float64, nB int, alpha float64) Comparison {
	difference := meanA - meanB

	if nA <= 1 || nB <= 1 {
		return Comparison{Difference: difference}
	}

	va := stddevA * stddevA / float64(nA)
	vb := stddevB * stddevB / float64(nB)
	se := math.Sqrt(va + vb)

	df := welchDF(stddevA, nA, stddevB, nB)

	var t float64
	if se > 0 {
		t = difference / se
	}

	pValue := 1.0
	if df > 0 {
		dist := distuv.StudentsT{Nu: df, Mu: 0, Sigma: 1}
		pValue = 2 * (1 - dist.CDF(math.Abs(t)))
		if pValue > 1 {
			pValue = 1
		} else if pValue < 0 {
			pValue = 0
		}
	}

	pooledStddev := pooledStddev(stddevA, nA, stddevB, nB)
	cohensD := 0.0
	if pooledStddev > 0 {
		cohensD = difference / pooledStddev
	}

	return Comparison{
		Difference:  difference,
		StdError:    se,
		TStatistic:  t,
		PValue:      pValue,
		CohensD:     cohensD,
		DF:          df,
		Significant: pValue < alpha,
	}
}

func welchDF(sdA float64, nA int, sdB float64, nB int) float64 {
	va := sdA * sdA / float64(nA)
	vb := sdB * sdB / float64(nB)
	num := (va + vb) * (va + vb)
	den := (va*va)/float64(nA-1) + (vb*vb)/float64(nB-1)
	if den == 0 {
		return float64(nA + nB - 2)
	}
	return num / den
}

func pooledStddev(sdA float64, nA int, sdB float64, nB int) float64 {
	if nA+nB <= 2 {
		return 0
	}
	pooledVar := (float64(nA-1)*sdA*sdA + float64(nB-1)*sdB*sdB) / float64(nA+nB-2)
	return math.Sqrt(pooledVar)
}
