// Package validator drives generators in bulk and runs goodness-of-fit
// tests against the uniform distribution on [0, 1).
//
// The validator only consumes the draw interface; it has no access to any
// generator's internal state.
package validator

import (
	"errors"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pseudorand/pseudorand/generator"
	"github.com/pseudorand/pseudorand/pkg/log"
)

func init() {
	prometheus.MustRegister(promDrawsTotal)
	prometheus.MustRegister(promTestDurationMilliseconds)
}

var promDrawsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pseudorand_draws_total",
		Help: "The number of values drawn from generators during validation",
	},
	[]string{"generator"},
)

var promTestDurationMilliseconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "pseudorand_test_duration_milliseconds",
		Help:    "The duration of one statistical test over one sample set",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	},
	[]string{"generator", "test"},
)

func recordTestDuration(name, test string, duration time.Duration) {
	promTestDurationMilliseconds.
		WithLabelValues(name, test).
		Observe(float64(duration.Nanoseconds()) / float64(time.Millisecond))
}

// significance is the level at which the null hypothesis of uniformity is
// rejected.
const significance = 0.05

// samplesPerBin is the target chi-square bin occupancy; the bin count is
// derived from it.
const samplesPerBin = 100

// ErrSampleTooSmall is returned by tests that cannot run on the given
// number of samples.
var ErrSampleTooSmall = errors.New("not enough samples for this test")

// ChiSquareResult is the outcome of the chi-square uniformity test.
type ChiSquareResult struct {
	// Consistent reports whether the null hypothesis of uniformity is
	// accepted at the significance level.
	Consistent bool `json:"consistent"`

	// ChiSquare is the test statistic.
	ChiSquare float64 `json:"chi_square"`

	// CriticalValue is the acceptance threshold for the statistic.
	CriticalValue float64 `json:"critical_value"`

	// PValue is the probability of observing the statistic or a more
	// extreme value under the null hypothesis.
	PValue float64 `json:"p_value"`
}

// KolmogorovSmirnovResult is the outcome of the Kolmogorov-Smirnov test
// against the uniform distribution.
type KolmogorovSmirnovResult struct {
	// Consistent reports whether the null hypothesis of uniformity is
	// accepted at the significance level.
	Consistent bool `json:"consistent"`

	// Statistic is the maximum distance between the empirical
	// distribution function of the samples and the uniform CDF.
	Statistic float64 `json:"statistic"`

	// PValue is the probability of observing the statistic or a more
	// extreme value under the null hypothesis.
	PValue float64 `json:"p_value"`
}

// Quantiles summarizes the location of a sample set.
type Quantiles struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// Report is the result of one validation pass over one generator.
type Report struct {
	Generator         string                  `json:"generator"`
	Samples           int                     `json:"samples"`
	ChiSquare         ChiSquareResult         `json:"chi_square"`
	KolmogorovSmirnov KolmogorovSmirnovResult `json:"kolmogorov_smirnov"`
	Quantiles         Quantiles               `json:"quantiles"`
}

// Consistent reports whether every test accepted the null hypothesis.
func (r Report) Consistent() bool {
	return r.ChiSquare.Consistent && r.KolmogorovSmirnov.Consistent
}

// LogFields provides Fields for logging.
func (r Report) LogFields() log.Fields {
	return log.Fields{
		"generator":   r.Generator,
		"samples":     r.Samples,
		"chiSquare":   r.ChiSquare.ChiSquare,
		"chiSquareOK": r.ChiSquare.Consistent,
		"ksStatistic": r.KolmogorovSmirnov.Statistic,
		"ksOK":        r.KolmogorovSmirnov.Consistent,
	}
}

// Validator runs statistical tests over one generator.
type Validator struct {
	name string
	gen  generator.Generator
}

// New builds a Validator for the named generator.
func New(name string, g generator.Generator) *Validator {
	return &Validator{name: name, gen: g}
}

// Sample draws n normalized values from the generator.
func (v *Validator) Sample(n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = v.gen.Float64()
	}
	promDrawsTotal.WithLabelValues(v.name).Add(float64(n))

	return samples
}

// Run draws n values and runs all tests over them.
func (v *Validator) Run(n int) (Report, error) {
	samples := v.Sample(n)
	return v.Test(samples)
}

// Test runs all tests over an existing sample set.
func (v *Validator) Test(samples []float64) (Report, error) {
	start := time.Now()
	chi, err := ChiSquareUniformity(samples)
	recordTestDuration(v.name, "chi_square", time.Since(start))
	if err != nil {
		return Report{}, err
	}

	start = time.Now()
	ks, err := KolmogorovSmirnov(samples)
	recordTestDuration(v.name, "kolmogorov_smirnov", time.Since(start))
	if err != nil {
		return Report{}, err
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	return Report{
		Generator:         v.name,
		Samples:           len(samples),
		ChiSquare:         chi,
		KolmogorovSmirnov: ks,
		Quantiles: Quantiles{
			P50: quantile(sorted, 0.50),
			P95: quantile(sorted, 0.95),
			P99: quantile(sorted, 0.99),
		},
	}, nil
}

// ChiSquareUniformity performs the chi-square test for uniformity on
// samples in [0, 1). The bin count is len(samples)/samplesPerBin; at least
// two bins are required.
func ChiSquareUniformity(samples []float64) (ChiSquareResult, error) {
	bins := len(samples) / samplesPerBin
	if bins < 2 {
		return ChiSquareResult{}, ErrSampleTooSmall
	}

	observed := make([]float64, bins)
	for _, s := range samples {
		i := int(s * float64(bins))
		if i >= bins {
			i = bins - 1
		}
		observed[i]++
	}

	expected := float64(len(samples)) / float64(bins)
	statistic := 0.0
	for _, o := range observed {
		d := o - expected
		statistic += d * d / expected
	}

	dof := float64(bins - 1)
	critical := chiSquarePPF(1-significance, dof)

	return ChiSquareResult{
		Consistent:    statistic <= critical,
		ChiSquare:     statistic,
		CriticalValue: critical,
		PValue:        1 - chiSquareCDF(statistic, dof),
	}, nil
}

// KolmogorovSmirnov performs the Kolmogorov-Smirnov test against the
// uniform distribution on [0, 1).
func KolmogorovSmirnov(samples []float64) (KolmogorovSmirnovResult, error) {
	if len(samples) == 0 {
		return KolmogorovSmirnovResult{}, ErrSampleTooSmall
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	statistic := 0.0
	for i, x := range sorted {
		above := float64(i+1)/n - x
		below := x - float64(i)/n
		if above > statistic {
			statistic = above
		}
		if below > statistic {
			statistic = below
		}
	}

	p := ksProb(statistic, n)

	return KolmogorovSmirnovResult{
		Consistent: p > significance,
		Statistic:  statistic,
		PValue:     p,
	}, nil
}
