package config

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ProgName    string
	Verbose     bool
	NoColor     bool
	LogFormat   string
	MetricsPort int
	Parallelism int
	MinScore    float64
	OutputMutex sync.Mutex
)

// File is the optional YAML configuration. Every field is a default for the
// command line flag of the same name.
type File struct {
	Execute     *string  `yaml:"execute"`
	Verbose     *bool    `yaml:"verbose"`
	NoColor     *bool    `yaml:"noColor"`
	LogFormat   *string  `yaml:"logFormat"`
	MetricsPort *int     `yaml:"metricsPort"`
	Parallelism *int     `yaml:"parallelism"`
	MinScore    *float64 `yaml:"minScore"`
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are an
// error. An empty file is a valid configuration that sets nothing.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open config file %s", path)
	}
	defer f.Close()

	var cfg File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "could not parse config file %s", path)
	}
	return &cfg, nil
}

// Apply copies the values set in the file into the package variables,
// skipping every flag for which changed returns true.
func (cfg *File) Apply(changed func(flag string) bool) {
	if cfg.Execute != nil && !changed("execute") {
		ProgName = *cfg.Execute
	}
	if cfg.Verbose != nil && !changed("verbose") {
		Verbose = *cfg.Verbose
	}
	if cfg.NoColor != nil && !changed("noColor") {
		NoColor = *cfg.NoColor
	}
	if cfg.LogFormat != nil && !changed("logFormat") {
		LogFormat = *cfg.LogFormat
	}
	if cfg.MetricsPort != nil && !changed("metricsPort") {
		MetricsPort = *cfg.MetricsPort
	}
	if cfg.Parallelism != nil && !changed("parallelism") {
		Parallelism = *cfg.Parallelism
	}
	if cfg.MinScore != nil && !changed("minScore") {
		MinScore = *cfg.MinScore
	}
}

// Validate checks the combination of settings after flags and file are merged.
func Validate() error {
	if MetricsPort < 0 || MetricsPort > 65535 {
		return errors.Errorf("metricsPort %d out of range", MetricsPort)
	}
	if Parallelism < 1 {
		return errors.Errorf("parallelism must be at least 1, got %d", Parallelism)
	}
	if MinScore < 0 || MinScore > 1 {
		return errors.Errorf("minScore must be between 0 and 1, got %v", MinScore)
	}
	return nil
}
