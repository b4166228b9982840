package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpfrontend "github.com/pseudorand/pseudorand/frontend/http"
	"github.com/pseudorand/pseudorand/generator"
	_ "github.com/pseudorand/pseudorand/generator/lcg"
	_ "github.com/pseudorand/pseudorand/generator/mt19937"
	_ "github.com/pseudorand/pseudorand/generator/xorshift"
	"github.com/pseudorand/pseudorand/pkg/log"
	"github.com/pseudorand/pseudorand/pkg/metrics"
	"github.com/pseudorand/pseudorand/pkg/stop"
	"github.com/pseudorand/pseudorand/validator"
)

// Run represents the state of a running instance.
type Run struct {
	configFilePath string
	serving        bool
	sg             *stop.Group
}

// NewRun runs an instance of pseudorand from the given config path.
func NewRun(configFilePath string) (*Run, error) {
	r := &Run{
		configFilePath: configFilePath,
		sg:             stop.NewGroup(),
	}

	return r, r.Start()
}

// Start begins an instance of pseudorand: it executes every configured
// validation run, then brings up the serving surfaces the config asks for.
func (r *Run) Start() error {
	configFile, err := ParseConfigFile(r.configFilePath)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	cfg := configFile.Main

	if err := executeRuns(cfg); err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		log.Info("starting metrics server", log.Fields{"addr": cfg.MetricsAddr})
		r.sg.Add(metrics.NewServer(cfg.MetricsAddr))
		r.serving = true
	}

	if cfg.HTTPConfig.Addr != "" {
		log.Info("starting http frontend", cfg.HTTPConfig)
		r.sg.Add(httpfrontend.NewFrontend(cfg.HTTPConfig))
		r.serving = true
	}

	return nil
}

// Stop shuts down an instance of pseudorand.
func (r *Run) Stop() stop.Result {
	return r.sg.Stop()
}

// executeRuns builds, seeds and validates every generator named by the
// config, writing sample and report files under the output directory.
func executeRuns(cfg Config) error {
	if len(cfg.Runs) == 0 {
		return nil
	}

	reports := make([]validator.Report, 0, len(cfg.Runs))
	for _, run := range cfg.Runs {
		optionBytes, err := run.OptionBytes()
		if err != nil {
			return errors.Wrap(err, "failed to marshal options for "+run.Generator)
		}

		g, err := generator.New(run.Generator, optionBytes)
		if err != nil {
			return errors.Wrap(err, "failed to build generator "+run.Generator)
		}
		if err := g.Seed(run.Seed); err != nil {
			return errors.Wrap(err, "failed to seed generator "+run.Generator)
		}

		v := validator.New(run.Generator, g)
		samples := v.Sample(run.Count)

		report, err := v.Test(samples)
		if err != nil {
			return errors.Wrap(err, "failed to validate generator "+run.Generator)
		}
		reports = append(reports, report)

		if report.Consistent() {
			log.Info("validation passed", report)
		} else {
			log.Warn("validation failed", report)
		}

		if cfg.OutputDir != "" {
			path := filepath.Join(cfg.OutputDir, run.Generator+"_samples.txt")
			if err := validator.WriteSamples(path, samples); err != nil {
				return err
			}
			log.Debug("wrote samples", log.Fields{"path": path})
		}
	}

	if cfg.OutputDir != "" {
		path := filepath.Join(cfg.OutputDir, "report.txt")
		if err := validator.WriteReportFile(path, reports); err != nil {
			return err
		}
		log.Info("wrote report", log.Fields{"path": path})
	}

	return nil
}

// RootRunCmdFunc implements a Cobra command that runs an instance of
// pseudorand and handles the process lifecycle.
func RootRunCmdFunc(cmd *cobra.Command, args []string) error {
	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	r, err := NewRun(configFilePath)
	if err != nil {
		return err
	}

	if r.serving {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
	}

	return combineErrors(r.Stop().Wait())
}

// RootPreRunCmdFunc handles command line flags for the Run command.
func RootPreRunCmdFunc(cmd *cobra.Command, args []string) error {
	noColors, err := cmd.Flags().GetBool("nocolors")
	if err != nil {
		return err
	}
	if noColors {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	debugLog, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}
	if debugLog {
		log.Info("enabling debug logging")
		log.SetDebug(true)
	}

	return nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	strs := make([]string, 0, len(errs))
	for _, err := range errs {
		strs = append(strs, err.Error())
	}

	return errors.New(strings.Join(strs, "; "))
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "pseudorand",
		Short:   "Deterministic PRNG suite",
		Long:    "Seeds, draws from and statistically validates deterministic pseudo-random number generators",
		PreRunE: RootPreRunCmdFunc,
		RunE:    RootRunCmdFunc,
	}

	rootCmd.Flags().String("config", "/etc/pseudorand.yaml", "location of configuration file")
	rootCmd.Flags().Bool("debug", false, "enable debug logging")
	rootCmd.Flags().Bool("nocolors", false, "disable log coloring")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal("failed when executing root cobra command: " + err.Error())
	}
}
