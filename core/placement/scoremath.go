package placement

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Probability floors. They keep every connector score finite.
const (
	numeratorFloor        = 1e-5
	massFloor             = 1e-4
	infeasibleDenominator = 1e-4
)

// Binomial returns C(n, k) using the multiplicative formula so no
// intermediate factorial is formed. It returns 0 when the value does not fit
// in a uint64 (and for k > n); callers treat 0 as "unrepresentable".
func Binomial(n, k uint64) uint64 {
	if k > n {
		return 0
	}
	if n-k < k {
		k = n - k
	}
	c := uint64(1)
	for i := uint64(1); i <= k; i, n = i+1, n-1 {
		if c/i > math.MaxUint64/n {
			return 0
		}
		// c*n/i split as (c/i*i + c%i)*n/i
		head := c / i * n
		tail := c % i * n / i
		if head > math.MaxUint64-tail {
			return 0
		}
		c = head + tail
	}
	return c
}

// GaussianCDF evaluates the normal CDF at x. The sign of sigma is ignored.
func GaussianCDF(x, mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: math.Abs(sigma)}.CDF(x)
}

// GaussianPointMass approximates P(X == x) for an integer-valued x by the
// mass of [x-0.5, x+0.5]. A zero sigma is a point distribution at mu.
func GaussianPointMass(x, mu, sigma float64) float64 {
	if sigma != 0 {
		return GaussianCDF(x+0.5, mu, sigma) - GaussianCDF(x-0.5, mu, sigma)
	}
	if x == mu {
		return 1
	}
	return 0
}

// StatisticalNumerator is P(gap | connector model): the point mass at gap,
// renormalized to the gaps a sequence of dnaLength can realize.
func StatisticalNumerator(dnaLength, gap int, mu, sigma float64) float64 {
	numerator := GaussianPointMass(float64(gap), mu, sigma)
	if numerator < numeratorFloor {
		numerator = numeratorFloor
	}
	if sigma == 0 {
		return numerator
	}
	mass := GaussianCDF(float64(dnaLength-1), mu, sigma) - GaussianCDF(0, mu, sigma)
	if mass < massFloor {
		mass = massFloor
	}
	return numerator / mass
}

// UniformDenominator is P(gap | null model) where numRec recognizers are
// dropped uniformly at random onto effectiveLength free positions ("stars
// and bars"). Gaps the model cannot produce get a fixed small probability.
func UniformDenominator(gap, numRec, effectiveLength int) float64 {
	d := gap + 1
	if d < 1 || d > effectiveLength-numRec+1 {
		return infeasibleDenominator
	}
	num := Binomial(uint64(effectiveLength-d), uint64(numRec-1))
	den := Binomial(uint64(effectiveLength), uint64(numRec))
	if num == 0 || den == 0 {
		return infeasibleDenominator
	}
	return float64(num) / float64(den)
}
