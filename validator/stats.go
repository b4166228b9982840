package validator

import (
	"math"
)

// The special functions below are the pieces of the chi-square and
// Kolmogorov-Smirnov distributions the tests need. They follow the
// classic series/continued-fraction evaluations of the regularized lower
// incomplete gamma function and the Kolmogorov asymptotic distribution.

const (
	gammaEps     = 1e-14
	gammaMaxIter = 500
)

// gammaP computes the regularized lower incomplete gamma function P(a, x).
func gammaP(a, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x < a+1 {
		return gammaSeries(a, x)
	}
	return 1 - gammaContinuedFraction(a, x)
}

// gammaSeries evaluates P(a, x) by its power series, convergent for
// x < a+1.
func gammaSeries(a, x float64) float64 {
	ap := a
	sum := 1 / a
	del := sum
	for i := 0; i < gammaMaxIter; i++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*gammaEps {
			break
		}
	}
	return sum * math.Exp(-x+a*math.Log(x)-lgamma(a))
}

// gammaContinuedFraction evaluates Q(a, x) = 1 − P(a, x) by its continued
// fraction (modified Lentz), convergent for x ≥ a+1.
func gammaContinuedFraction(a, x float64) float64 {
	const tiny = 1e-300

	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d

	for i := 1; i <= gammaMaxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < gammaEps {
			break
		}
	}

	return math.Exp(-x+a*math.Log(x)-lgamma(a)) * h
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// chiSquareCDF is the CDF of the chi-square distribution with dof degrees
// of freedom.
func chiSquareCDF(x, dof float64) float64 {
	return gammaP(dof/2, x/2)
}

// chiSquarePPF inverts chiSquareCDF by bisection. The CDF is monotonic,
// so the bracket [0, hi] only needs to be doubled until it contains p.
func chiSquarePPF(p, dof float64) float64 {
	lo, hi := 0.0, dof+16
	for chiSquareCDF(hi, dof) < p {
		hi *= 2
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if chiSquareCDF(mid, dof) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// ksProb computes the p-value of an observed Kolmogorov-Smirnov statistic d
// over n samples, using the asymptotic distribution with the Stephens
// small-sample correction on the argument.
func ksProb(d, n float64) float64 {
	sqrtN := math.Sqrt(n)
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d

	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(-2*float64(j)*float64(j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}

	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// quantile returns the q-quantile of an ascending sample set, with linear
// interpolation between adjacent order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}

	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	frac := pos - float64(i)
	return sorted[i]*(1-frac) + sorted[i+1]*frac
}
