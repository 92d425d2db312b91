// internal/cli/options.go
package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Common holds the flags shared by every command.
type Common struct {
	Config   string `mapstructure:"config"`
	LogLevel string `mapstructure:"log-level"`
	Quiet    bool   `mapstructure:"quiet"`
}

// Output holds the presentation flags.
type Output struct {
	Output   string `mapstructure:"output"`
	Pretty   bool   `mapstructure:"pretty"`
	Sort     bool   `mapstructure:"sort"`
	NoHeader bool   `mapstructure:"no-header"`
}

// StoreFlags select the result store.
type StoreFlags struct {
	Store string `mapstructure:"store"`
	DB    string `mapstructure:"db"`
}

// PlaceOptions holds all flags of `mplace place`.
type PlaceOptions struct {
	Common     `mapstructure:",squash"`
	Output     `mapstructure:",squash"`
	StoreFlags `mapstructure:",squash"`

	// Chain input
	ChainFile  string `mapstructure:"chain"`
	ChainIndex int    `mapstructure:"chain-index"`

	// Sequence input
	SeqFile  string `mapstructure:"sequences"`
	SeqID    string `mapstructure:"sequence-id"`
	Sequence string `mapstructure:"sequence"`

	// Scoring
	Precompute bool `mapstructure:"precompute"`
	MaxGap     int  `mapstructure:"max-gap"`

	// Performance
	Threads int `mapstructure:"threads"`
}

// ResultsOptions holds all flags of `mplace results`.
type ResultsOptions struct {
	Common     `mapstructure:",squash"`
	Output     `mapstructure:",squash"`
	StoreFlags `mapstructure:",squash"`

	Chain      string `mapstructure:"chain"`
	SequenceID string `mapstructure:"sequence-id"`
	Limit      int    `mapstructure:"limit"`
}

// ConvertOptions holds all flags of `mplace convert`.
type ConvertOptions struct {
	Common `mapstructure:",squash"`

	ChainFile string `mapstructure:"chain"`
	To        string `mapstructure:"to"`
}

// Formats accepted by --output.
var Formats = []string{"text", "json", "jsonl", "fasta"}

// UsageError marks invalid invocations (exit code 2).
type UsageError struct{ msg string }

func (e *UsageError) Error() string { return e.msg }

// Usagef returns a UsageError.
func Usagef(format string, a ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, a...)}
}

// IsUsage reports whether err is, or wraps, a UsageError.
func IsUsage(err error) bool {
	var u *UsageError
	return errors.As(err, &u)
}

// RegisterCommon adds the shared flags (as persistent flags on the root).
func RegisterCommon(fs *pflag.FlagSet) {
	fs.String("config", "", "YAML config file with flag defaults")
	fs.String("log-level", "info", "log level: debug | info | warn | error")
	fs.BoolP("quiet", "q", false, "only log warnings and errors")
}

func registerOutput(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "text", "output format: "+strings.Join(Formats, " | "))
	fs.Bool("pretty", false, "pretty ASCII placement block (text)")
	fs.Bool("sort", false, "sort placements by score, best first")
	fs.Bool("no-header", false, "suppress header line in text/TSV")
}

func registerStore(fs *pflag.FlagSet, defaultKind string) {
	fs.String("store", defaultKind, "result store: none | memory | sqlite")
	fs.String("db", "mplace.db", "sqlite database path (--store sqlite)")
}

// RegisterPlace adds the flags of `mplace place`.
func RegisterPlace(fs *pflag.FlagSet) {
	fs.StringP("chain", "c", "", "chain file: JSON organism list or YAML (.yaml/.yml) [*]")
	fs.Int("chain-index", 0, "which chain of the file to place")
	fs.StringP("sequences", "s", "", "FASTA file (plain or gzip) or '-' for STDIN [*]")
	fs.String("sequence-id", "", "FASTA record to use (default: first)")
	fs.String("sequence", "", "inline DNA sequence instead of --sequences [*]")
	fs.Bool("precompute", false, "score connectors from a precomputed gap table")
	fs.Int("max-gap", 0, "precomputed table width (0 = every feasible gap)")
	fs.IntP("threads", "t", 0, "worker goroutines (0 = all CPUs)")
	registerOutput(fs)
	registerStore(fs, "none")
}

// RegisterResults adds the flags of `mplace results`.
func RegisterResults(fs *pflag.FlagSet) {
	fs.String("chain", "", "only placements of this chain")
	fs.String("sequence-id", "", "only placements on this sequence")
	fs.Int("limit", 0, "max placements listed (0 = all)")
	registerOutput(fs)
	registerStore(fs, "sqlite")
}

// RegisterConvert adds the flags of `mplace convert`.
func RegisterConvert(fs *pflag.FlagSet) {
	fs.StringP("chain", "c", "", "chain file to convert [*]")
	fs.String("to", "yaml", "target format: yaml | json")
}

// NewViper binds fs to a fresh viper instance. Precedence is flag, then
// MPLACE_* environment variable, then the --config file, then the flag
// default.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("MPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, Usagef("read config %s: %v", cfg, err)
		}
	}
	return v, nil
}

func load(fs *pflag.FlagSet, out any) error {
	v, err := NewViper(fs)
	if err != nil {
		return err
	}
	if err := v.Unmarshal(out); err != nil {
		return Usagef("invalid configuration: %v", err)
	}
	return nil
}

// LoadPlace reads and validates the place options.
func LoadPlace(fs *pflag.FlagSet) (PlaceOptions, error) {
	var o PlaceOptions
	if err := load(fs, &o); err != nil {
		return o, err
	}
	return o, o.Validate()
}

// LoadResults reads and validates the results options.
func LoadResults(fs *pflag.FlagSet) (ResultsOptions, error) {
	var o ResultsOptions
	if err := load(fs, &o); err != nil {
		return o, err
	}
	return o, o.Validate()
}

// LoadConvert reads and validates the convert options.
func LoadConvert(fs *pflag.FlagSet) (ConvertOptions, error) {
	var o ConvertOptions
	if err := load(fs, &o); err != nil {
		return o, err
	}
	return o, o.Validate()
}

func (c Common) validate() error {
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return Usagef("invalid --log-level %q", c.LogLevel)
		}
	}
	return nil
}

func (o Output) validate() error {
	for _, f := range Formats {
		if o.Output == f {
			return nil
		}
	}
	return Usagef("invalid --output %q", o.Output)
}

func (s StoreFlags) validate() error {
	switch s.Store {
	case "", "none", "memory":
		return nil
	case "sqlite":
		if s.DB == "" {
			return Usagef("--store sqlite requires --db")
		}
		return nil
	default:
		return Usagef("invalid --store %q", s.Store)
	}
}

// Validate checks the place options.
func (o PlaceOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if o.ChainFile == "" {
		return Usagef("--chain is required")
	}
	if o.ChainIndex < 0 {
		return Usagef("--chain-index must be ≥ 0")
	}
	switch {
	case o.SeqFile != "" && o.Sequence != "":
		return Usagef("--sequences conflicts with --sequence")
	case o.SeqFile == "" && o.Sequence == "":
		return Usagef("provide --sequences or --sequence")
	case o.Sequence != "" && o.SeqID != "":
		return Usagef("--sequence-id only applies to --sequences")
	}
	if o.MaxGap < 0 {
		return Usagef("--max-gap must be ≥ 0")
	}
	if o.MaxGap > 0 && !o.Precompute {
		return Usagef("--max-gap requires --precompute")
	}
	if o.Threads < 0 {
		return Usagef("--threads must be ≥ 0")
	}
	if err := o.Output.validate(); err != nil {
		return err
	}
	return o.StoreFlags.validate()
}

// Validate checks the results options.
func (o ResultsOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if o.Limit < 0 {
		return Usagef("--limit must be ≥ 0")
	}
	if o.Store == "" || o.Store == "none" {
		return Usagef("results need a store (--store memory | sqlite)")
	}
	if err := o.Output.validate(); err != nil {
		return err
	}
	return o.StoreFlags.validate()
}

// Validate checks the convert options.
func (o ConvertOptions) Validate() error {
	if err := o.Common.validate(); err != nil {
		return err
	}
	if o.ChainFile == "" {
		return Usagef("--chain is required")
	}
	if o.To != "yaml" && o.To != "json" {
		return Usagef("invalid --to %q", o.To)
	}
	return nil
}
