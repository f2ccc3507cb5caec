// Command bialign aligns two parallel texts sentence by sentence.
//
// Inputs are plain text with "||" between anchor groups and "|" between
// sentences, or XML with one element per sentence. Either may be xz or gzip
// compressed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperAlign/core/bitext"
	"github.com/FocuswithJustin/JuniperAlign/core/errors"
	"github.com/FocuswithJustin/JuniperAlign/core/ir"
	"github.com/FocuswithJustin/JuniperAlign/core/segment"
	"github.com/FocuswithJustin/JuniperAlign/internal/config"
	"github.com/FocuswithJustin/JuniperAlign/internal/logging"
	"github.com/FocuswithJustin/JuniperAlign/internal/source"
	"github.com/FocuswithJustin/JuniperAlign/internal/tmx"
)

const version = "0.1.0"

// CLI defines the command-line interface for bialign.
type CLI struct {
	Globals `embed:""`

	Align   AlignCmd   `cmd:"" help:"Align two parallel texts"`
	Export  ExportCmd  `cmd:"" help:"Align two texts and write a parallel corpus as JSON"`
	Method  MethodCmd  `cmd:"" help:"Print the fully resolved method selector"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Globals are flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"TOML configuration file" type:"existingfile"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`
}

// load returns the configuration with global overrides applied, initialises
// logging on ctx's stderr and tags the run with a fresh ID.
func (g *Globals) load(ctx *kong.Context) (*config.Config, context.Context, error) {
	cfg := config.Default()
	if g.Config != "" {
		var err error
		if cfg, err = config.Load(g.Config); err != nil {
			return nil, nil, err
		}
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if err := cfg.InitLogging(ctx.Stderr); err != nil {
		return nil, nil, err
	}

	runCtx := logging.WithRunID(context.Background(), uuid.NewString())
	logging.DebugContext(runCtx, "config_loaded", "path", g.Config, "method", cfg.Method)
	return cfg, runCtx, nil
}

// AlignFlags override configuration values for one run.
type AlignFlags struct {
	Method        string `short:"m" help:"Method selector, e.g. gale-church(variance=7.2)"`
	Weight        string `short:"w" help:"Unit weight policy (words, chars)"`
	EstimateRatio bool   `name:"estimate-ratio" help:"Estimate the length ratio from the inputs"`
	Workers       int    `help:"Anchor groups aligned concurrently (0 keeps the configured value)"`
	CacheSize     int    `name:"cache-size" help:"Memoised group alignments (0 keeps the configured value)"`
	UnitXPath     string `name:"unit-xpath" help:"XPath of sentence elements in XML inputs"`
	GroupXPath    string `name:"group-xpath" help:"XPath of anchor group elements in XML inputs"`
}

func (f *AlignFlags) apply(cfg *config.Config) error {
	if f.Method != "" {
		cfg.Method = f.Method
	}
	if f.Weight != "" {
		cfg.Weight = f.Weight
	}
	if f.EstimateRatio {
		cfg.EstimateRatio = true
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}
	if f.CacheSize != 0 {
		cfg.CacheSize = f.CacheSize
	}
	if f.UnitXPath != "" {
		cfg.Source.UnitXPath = f.UnitXPath
	}
	if f.GroupXPath != "" {
		cfg.Source.GroupXPath = f.GroupXPath
	}
	return cfg.Validate()
}

// alignRun is a configured aligner with both inputs loaded.
type alignRun struct {
	ctx         context.Context
	aligner     *bitext.Aligner
	left, right []segment.Group
}

// run loads both inputs and returns an aligner configured for them. The
// aligner logs through the run's logger.
func (f *AlignFlags) run(ctx *kong.Context, g *Globals, leftPath, rightPath string) (*alignRun, error) {
	cfg, runCtx, err := g.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := f.apply(cfg); err != nil {
		return nil, err
	}

	seg, err := cfg.Segmenter()
	if err != nil {
		return nil, err
	}
	r := &alignRun{ctx: runCtx}
	if r.left, err = source.Load(leftPath, seg, cfg.SourceOptions()); err != nil {
		return nil, err
	}
	if r.right, err = source.Load(rightPath, seg, cfg.SourceOptions()); err != nil {
		return nil, err
	}
	logging.DebugContext(runCtx, "inputs_loaded",
		"left", leftPath, "left_groups", len(r.left),
		"right", rightPath, "right_groups", len(r.right))

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	r.aligner = bitext.New(append(opts, bitext.WithLogger(logging.LoggerFromContext(runCtx)))...)
	return r, nil
}

// AlignCmd prints the aligned blocks of two texts.
type AlignCmd struct {
	AlignFlags `embed:""`

	Left      string `arg:"" help:"Left text" type:"existingfile"`
	Right     string `arg:"" help:"Right text" type:"existingfile"`
	Format    string `short:"f" help:"Output format (tsv, json, blocks, tmx)" enum:"tsv,json,blocks,tmx" default:"tsv"`
	LeftLang  string `name:"left-lang" help:"BCP-47 language of the left text (tmx)"`
	RightLang string `name:"right-lang" help:"BCP-47 language of the right text (tmx)"`
}

func (c *AlignCmd) Run(ctx *kong.Context, g *Globals) error {
	r, err := c.run(ctx, g, c.Left, c.Right)
	if err != nil {
		return err
	}
	pairs, err := r.aligner.AlignGroups(r.left, r.right)
	if err != nil {
		return err
	}
	if c.Format == "tmx" {
		return tmx.Write(ctx.Stdout, tmx.Header{
			SourceLang:  c.LeftLang,
			TargetLang:  c.RightLang,
			ToolVersion: version,
		}, pairs)
	}
	return writePairs(ctx.Stdout, c.Format, pairs)
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func writePairs(w io.Writer, format string, pairs []bitext.TextPair) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pairs)
	case "blocks":
		for _, p := range pairs {
			if _, err := fmt.Fprintln(w, p.String()); err != nil {
				return err
			}
		}
	default:
		for _, p := range pairs {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", tsvEscaper.Replace(p.Left), tsvEscaper.Replace(p.Right)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportCmd writes the alignment of two texts as a parallel corpus.
type ExportCmd struct {
	AlignFlags `embed:""`

	Left      string `arg:"" help:"Left text" type:"existingfile"`
	Right     string `arg:"" help:"Right text" type:"existingfile"`
	LeftID    string `name:"left-id" help:"Corpus ID of the left text" default:"left"`
	RightID   string `name:"right-id" help:"Corpus ID of the right text" default:"right"`
	LeftLang  string `name:"left-lang" help:"BCP-47 language of the left text"`
	RightLang string `name:"right-lang" help:"BCP-47 language of the right text"`
}

func (c *ExportCmd) Run(ctx *kong.Context, g *Globals) error {
	r, err := c.run(ctx, g, c.Left, c.Right)
	if err != nil {
		return err
	}
	pc, err := r.aligner.ParallelGroups(
		ir.CorpusRef{ID: c.LeftID, Language: c.LeftLang},
		ir.CorpusRef{ID: c.RightID, Language: c.RightLang},
		r.left, r.right)
	if err != nil {
		return err
	}
	if invalid := ir.VerifyAllHashes(pc); len(invalid) > 0 {
		return fmt.Errorf("%w: %d aligned units fail hash verification, first %s",
			errors.ErrInternal, len(invalid), invalid[0])
	}
	for i := range r.left {
		logging.DebugContext(r.ctx, "anchor_group_exported", "anchor", i, "units", len(pc.UnitsAt(i)))
	}

	hash, err := ir.HashParallelCorpus(pc)
	if err != nil {
		return fmt.Errorf("failed to hash parallel corpus: %w", err)
	}
	logging.InfoContext(r.ctx, "parallel_corpus_exported", "id", pc.ID, "hash", hash)

	enc := json.NewEncoder(ctx.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pc)
}

// MethodCmd resolves a selector against the configuration.
type MethodCmd struct {
	Selector string `arg:"" optional:"" help:"Method selector (default from config)"`
}

func (c *MethodCmd) Run(ctx *kong.Context, g *Globals) error {
	cfg, _, err := g.load(ctx)
	if err != nil {
		return err
	}
	if c.Selector != "" {
		cfg.Method = c.Selector
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Stdout, bitext.New(opts...).Selector().String())
	return err
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *kong.Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "bialign version %s\n", version)
	return err
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("bialign"),
		kong.Description("Length-based sentence alignment of parallel texts"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options()...)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
