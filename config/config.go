// SPDX-License-Identifier: MIT

// Package config loads calibration run files.
//
// Order: Default() → YAML file → KINETICS_* environment variables →
// struct validation. File.Calibration turns the result into a
// calibrate.Config with a fully validated sampler.
package config

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kinetics/calibrate"
	"github.com/katalvlaran/kinetics/sampler"
)

// EnvPrefix prefixes every environment override, e.g. KINETICS_SAMPLER_SIZE.
const EnvPrefix = "KINETICS"

// Defaults for a four-state adjacency-constrained run.
const (
	DefaultTotalMatrices    = 1000
	DefaultSize             = 4
	DefaultMaxAttempts      = 1_000_000
	DefaultBalanceThreshold = 1e-6
)

// File is the on-disk run description.
type File struct {
	// Condition labels the run in logs, metrics and output.
	Condition string `yaml:"condition" split_words:"true"`

	// Observed is the measured steady-state occupancy; it must sum to 1.
	Observed []float64 `yaml:"observed" split_words:"true" validate:"required,min=1,dive,gte=0,lte=1"`

	// Threshold is the per-state acceptance half-width.
	Threshold []float64 `yaml:"threshold" split_words:"true" validate:"required,min=1,dive,gte=0"`

	Sampler SamplerFile `yaml:"sampler" split_words:"true"`

	TotalMatrices int           `yaml:"total_matrices" split_words:"true" validate:"gte=0"`
	MaxAttempts   int           `yaml:"max_attempts" split_words:"true" validate:"gte=0"`
	Deadline      time.Duration `yaml:"deadline" split_words:"true" validate:"gte=0"`

	// Seed for the run's generator; 0 picks one from the clock.
	Seed int64 `yaml:"seed" split_words:"true"`

	// BalanceThreshold is used when summarizing accepted matrices.
	BalanceThreshold float64 `yaml:"balance_threshold" split_words:"true" validate:"gte=0"`
	// Workers bounds the diagnostics pool; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" split_words:"true" validate:"gte=0"`

	Logging LoggingFile `yaml:"logging" split_words:"true"`
}

// SamplerFile mirrors calibrate.SamplerSpec.
type SamplerFile struct {
	Kind                           string   `yaml:"kind" split_words:"true" validate:"omitempty,oneof=uniform adjacent masked cycle random_transition_matrix"`
	Size                           int      `yaml:"size" split_words:"true" validate:"gte=1"`
	AllowSelfTransitions           bool     `yaml:"allow_self_transitions" split_words:"true"`
	ConstrainTransitionsToAdjacent bool     `yaml:"constrain_transitions_to_adjacent" split_words:"true"`
	Mask                           [][]bool `yaml:"mask,omitempty" ignored:"true"`
}

// LoggingFile configures the CLI logger.
type LoggingFile struct {
	Level  string `yaml:"level" split_words:"true" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" split_words:"true" validate:"omitempty,oneof=text json"`
}

// Default returns a File with every default filled in. Observed and
// Threshold have no default.
func Default() *File {
	return &File{
		Sampler: SamplerFile{
			Kind:                           sampler.LegacyName,
			Size:                           DefaultSize,
			AllowSelfTransitions:           false,
			ConstrainTransitionsToAdjacent: true,
		},
		TotalMatrices:    DefaultTotalMatrices,
		MaxAttempts:      DefaultMaxAttempts,
		BalanceThreshold: DefaultBalanceThreshold,
		Logging: LoggingFile{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (*File, error) {
	f := Default()
	if path != "" {
		var err error
		if f, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := f.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// LoadFromFile decodes a YAML run file over Default(). Unknown keys are
// rejected; an empty file yields the defaults.
func LoadFromFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer r.Close()

	return Decode(r)
}

// Decode reads YAML from r over Default().
func Decode(r io.Reader) (*File, error) {
	f := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return f, nil
}

// ApplyEnv overrides fields from KINETICS_* variables. Keys come from the
// field names (split_words), so only prefixed variables are consulted.
// Unset variables leave the current value alone.
func (f *File) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, f); err != nil {
		return fmt.Errorf("loading config from env: %w", err)
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names in messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks field-level constraints. Cross-field checks (lengths,
// Σ observed = 1, budget presence) happen in calibrate.Config.Validate via
// Calibration.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", calibrate.ErrInvalidConfiguration, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", calibrate.ErrInvalidConfiguration, err)
	}

	return nil
}

// SamplerSpec converts the sampler section.
func (f *File) SamplerSpec() calibrate.SamplerSpec {
	return calibrate.SamplerSpec{
		Kind:                 f.Sampler.Kind,
		Size:                 f.Sampler.Size,
		AllowSelfTransitions: f.Sampler.AllowSelfTransitions,
		ConstrainAdjacent:    f.Sampler.ConstrainTransitionsToAdjacent,
		Mask:                 f.Sampler.Mask,
	}
}

// Calibration builds the sampler and returns a validated calibrate.Config.
// Errors wrap calibrate.ErrInvalidConfiguration.
func (f *File) Calibration() (calibrate.Config, error) {
	if err := f.Validate(); err != nil {
		return calibrate.Config{}, err
	}
	smp, err := f.SamplerSpec().Build()
	if err != nil {
		return calibrate.Config{}, err
	}
	cfg := calibrate.Config{
		Condition:   f.Condition,
		Observed:    append([]float64(nil), f.Observed...),
		Threshold:   append([]float64(nil), f.Threshold...),
		Sampler:     smp,
		Total:       f.TotalMatrices,
		MaxAttempts: f.MaxAttempts,
		Deadline:    f.Deadline,
	}
	if err := cfg.Validate(); err != nil {
		return calibrate.Config{}, err
	}

	return cfg, nil
}

// Rand returns the run's generator and the seed it was built from.
func (f *File) Rand() (*rand.Rand, int64) {
	seed := f.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)), seed
}
