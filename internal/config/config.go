// Package config loads aligner settings from TOML.
//
// A file only needs the keys it changes; everything else keeps its default:
//
//	method = "gale-church(variance=7.2)"
//	weight = "chars"
//	workers = 4
//
//	[model]
//	penalty_indel = 400
//
//	[log]
//	level = "debug"
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/FocuswithJustin/JuniperAlign/core/align"
	"github.com/FocuswithJustin/JuniperAlign/core/bitext"
	"github.com/FocuswithJustin/JuniperAlign/core/cache"
	"github.com/FocuswithJustin/JuniperAlign/core/errors"
	"github.com/FocuswithJustin/JuniperAlign/core/segment"
	"github.com/FocuswithJustin/JuniperAlign/internal/logging"
	"github.com/FocuswithJustin/JuniperAlign/internal/source"
)

// Weight policy names.
const (
	WeightWords = "words"
	WeightChars = "chars"
)

// Config is the complete aligner configuration.
type Config struct {
	// Method is a method selector, e.g. "gale-church" or
	// "gale-church(ratio=1.1)". Selector parameters override Model.
	Method string `toml:"method"`

	// Weight is the unit weight policy: "words" or "chars".
	Weight string `toml:"weight"`

	// EstimateRatio replaces Model.Ratio by the observed weight ratio.
	EstimateRatio bool `toml:"estimate_ratio"`

	// Workers is the number of anchor groups aligned concurrently (0 = one per CPU).
	Workers int `toml:"workers"`

	// CacheSize is the number of memoised group alignments (0 = off).
	CacheSize int `toml:"cache_size"`

	Model  align.Model  `toml:"model"`
	Log    LogConfig    `toml:"log"`
	Source SourceConfig `toml:"source"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// SourceConfig controls how XML inputs are segmented.
type SourceConfig struct {
	UnitXPath  string `toml:"unit_xpath"`
	GroupXPath string `toml:"group_xpath"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Method:  string(align.DefaultMethod),
		Weight:  WeightWords,
		Workers: 1,
		Model:   align.DefaultModel(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Source: SourceConfig{
			UnitXPath: source.DefaultUnitXPath,
		},
	}
}

// Load reads and validates the TOML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read config", path, err)
	}
	return parse(path, data)
}

// Parse decodes and validates TOML data on top of Default.
func Parse(data []byte) (*Config, error) {
	return parse("", data)
}

func parse(path string, data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, &errors.ParseError{
			Format:  "TOML",
			Path:    path,
			Message: describe(err),
			Err:     err,
		}
	}

	if err := cfg.Validate(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return cfg, nil
}

// describe adds the position of TOML decode errors to the message.
func describe(err error) string {
	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		return fmt.Sprintf("line %d, column %d: %s", row, col, de.Error())
	}
	var se *toml.StrictMissingError
	if errors.As(err, &se) {
		return se.String()
	}
	return err.Error()
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.Selector(); err != nil {
		return err
	}
	if _, err := c.WeightFunc(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return errors.NewValidation("workers", "must not be negative")
	}
	if c.CacheSize < 0 {
		return errors.NewValidation("cache_size", "must not be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &errors.ValidationError{Field: "log.level", Message: err.Error()}
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return &errors.ValidationError{Field: "log.format", Message: err.Error()}
	}
	return nil
}

// Selector parses Method and applies it to Model.
func (c *Config) Selector() (align.Selector, error) {
	sel, err := align.ParseMethod(c.Method)
	if err != nil {
		return align.Selector{}, err
	}
	if _, err := sel.Apply(c.Model); err != nil {
		return align.Selector{}, err
	}
	return sel, nil
}

// WeightFunc returns the configured weight policy.
func (c *Config) WeightFunc() (segment.WeightFunc, error) {
	switch c.Weight {
	case "", WeightWords:
		return segment.WordCount, nil
	case WeightChars:
		return segment.CharCount, nil
	}
	return nil, errors.NewUnsupported("weight policy", fmt.Sprintf("%q, use %q or %q", c.Weight, WeightWords, WeightChars))
}

// Segmenter returns a segmenter using the configured weight policy.
func (c *Config) Segmenter() (*segment.Segmenter, error) {
	fn, err := c.WeightFunc()
	if err != nil {
		return nil, err
	}
	return segment.New(segment.WithWeight(fn)), nil
}

// Options translates the configuration into aligner options.
func (c *Config) Options() ([]bitext.Option, error) {
	sel, err := c.Selector()
	if err != nil {
		return nil, err
	}
	seg, err := c.Segmenter()
	if err != nil {
		return nil, err
	}

	opts := []bitext.Option{
		bitext.WithModel(c.Model),
		bitext.WithSelector(sel),
		bitext.WithSegmenter(seg),
		bitext.WithEstimatedRatio(c.EstimateRatio),
		bitext.WithWorkers(c.Workers),
	}
	if c.CacheSize > 0 {
		opts = append(opts, bitext.WithCache(cache.NewAlignmentCache(cache.Config{MaxSize: c.CacheSize})))
	}
	return opts, nil
}

// SourceOptions returns the XML selection settings.
func (c *Config) SourceOptions() source.Options {
	return source.Options{UnitXPath: c.Source.UnitXPath, GroupXPath: c.Source.GroupXPath}
}

// InitLogging configures the global logger from the log section, writing
// to w.
func (c *Config) InitLogging(w io.Writer) error {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return err
	}
	logging.InitLoggerTo(w, level, format)
	return nil
}
