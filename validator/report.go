package validator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// WriteSamples persists a sample set to path, one value per line, creating
// parent directories as needed.
func WriteSamples(path string, samples []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create sample directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create sample file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, s := range samples {
		if _, err := w.WriteString(strconv.FormatFloat(s, 'g', -1, 64) + "\n"); err != nil {
			return errors.Wrap(err, "failed to write sample")
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush sample file")
	}

	return nil
}

// WriteReport renders reports as text to w.
func WriteReport(w io.Writer, reports []Report) error {
	for _, r := range reports {
		verdict := "CONSISTENT"
		if !r.Consistent() {
			verdict = "INCONSISTENT"
		}

		_, err := fmt.Fprintf(w,
			"%s (%d samples): %s\n"+
				"  chi-square:         statistic=%.4f critical=%.4f p=%.4f consistent=%t\n"+
				"  kolmogorov-smirnov: statistic=%.6f p=%.4f consistent=%t\n"+
				"  quantiles:          p50=%.4f p95=%.4f p99=%.4f\n",
			r.Generator, r.Samples, verdict,
			r.ChiSquare.ChiSquare, r.ChiSquare.CriticalValue, r.ChiSquare.PValue, r.ChiSquare.Consistent,
			r.KolmogorovSmirnov.Statistic, r.KolmogorovSmirnov.PValue, r.KolmogorovSmirnov.Consistent,
			r.Quantiles.P50, r.Quantiles.P95, r.Quantiles.P99,
		)
		if err != nil {
			return errors.Wrap(err, "failed to write report")
		}
	}

	return nil
}

// WriteReportFile renders reports as text to path, creating parent
// directories as needed.
func WriteReportFile(path string, reports []Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create report directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create report file")
	}
	defer f.Close()

	return WriteReport(f, reports)
}
