package main

import (
	"errors"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"

	httpfrontend "github.com/pseudorand/pseudorand/frontend/http"
)

// RunConfig names one generator to build, seed and validate.
type RunConfig struct {
	// Generator is the registered driver name.
	Generator string `yaml:"generator"`

	// Options is the driver-specific option block.
	Options map[string]interface{} `yaml:"options"`

	// Seed re-seeds the generator after construction.
	Seed uint32 `yaml:"seed"`

	// Count is the number of values to draw for validation.
	Count int `yaml:"count"`
}

// OptionBytes returns the option block re-marshalled for the driver.
func (rc RunConfig) OptionBytes() ([]byte, error) {
	if rc.Options == nil {
		return nil, nil
	}
	return yaml.Marshal(rc.Options)
}

// Config is the top-level configuration block.
type Config struct {
	MetricsAddr string              `yaml:"metrics_addr"`
	HTTPConfig  httpfrontend.Config `yaml:"http"`
	OutputDir   string              `yaml:"output_dir"`
	Runs        []RunConfig         `yaml:"runs"`
}

// ConfigFile represents a namespaced YAML configuration file.
type ConfigFile struct {
	Main Config `yaml:"pseudorand"`
}

// ParseConfigFile returns a new ConfigFile given the path to a YAML
// configuration file.
//
// It supports relative and absolute paths and environment variables.
func ParseConfigFile(path string) (*ConfigFile, error) {
	if path == "" {
		return nil, errors.New("no config path specified")
	}

	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contents, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var cfgFile ConfigFile
	err = yaml.Unmarshal(contents, &cfgFile)
	if err != nil {
		return nil, err
	}

	return &cfgFile, nil
}
