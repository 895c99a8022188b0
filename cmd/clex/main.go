package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/fwessels/clex"
	"github.com/fwessels/clex/internal/config"
	"github.com/fwessels/clex/internal/errors"
	"github.com/fwessels/clex/internal/keywords"
	"github.com/fwessels/clex/internal/logger"
	"github.com/fwessels/clex/internal/preprocessor"
	"github.com/fwessels/clex/internal/report"
)

var (
	// Version information (set by ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

type flags struct {
	configPath   string
	keywordsPath string
	defines      defineFlags
	keepLines    bool
	noSubst      bool
	format       string
	logLevel     string
	version      bool
	file         string

	set map[string]bool // flags given explicitly on the command line
}

// defineFlags collects repeated -D NAME[=VALUE] flags.
type defineFlags map[string]string

func (d defineFlags) String() string {
	parts := make([]string, 0, len(d))
	for k, v := range d {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (d defineFlags) Set(s string) error {
	name, value := preprocessor.ParseDefine(s)
	if !preprocessor.ValidName(name) {
		return fmt.Errorf("invalid macro name %q", name)
	}
	d[name] = value
	return nil
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{defines: defineFlags{}, set: map[string]bool{}}

	fs := flag.NewFlagSet("clex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: clex [flags] [file]")
		fs.PrintDefaults()
	}

	fs.StringVar(&f.configPath, "config", "", "Path to YAML configuration file")
	fs.StringVar(&f.keywordsPath, "keywords", "", "Path to keyword list (one word per line)")
	fs.Var(f.defines, "D", "Define macro NAME[=VALUE] (repeatable)")
	fs.BoolVar(&f.keepLines, "keep-lines", false, "Keep line numbers of the original source")
	fs.BoolVar(&f.noSubst, "no-subst", false, "Do not substitute macro values")
	fs.StringVar(&f.format, "format", "", "Output format (table, summary, source, none)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.version, "version", false, "Print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	f.file = fs.Arg(0)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// resolveConfig loads the configuration file, if any, and applies the
// command-line overrides.
func resolveConfig(f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath, nil); err != nil {
			return nil, err
		}
	}

	if f.set["keywords"] {
		cfg.Keywords = f.keywordsPath
	}
	if f.set["keep-lines"] {
		cfg.KeepLineNumbers = f.keepLines
	}
	if f.set["no-subst"] {
		cfg.Substitute = !f.noSubst
	}
	if f.set["format"] {
		cfg.Format = f.format
	}
	if f.set["log-level"] {
		cfg.LogLevel = f.logLevel
	}
	if len(f.defines) > 0 && cfg.Defines == nil {
		cfg.Defines = map[string]string{}
	}
	for name, value := range f.defines {
		cfg.Defines[name] = value
	}

	if err := config.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation,
			"Invalid command-line options",
			"A flag value is not accepted",
			"Run clex -h for the list of accepted values")
	}
	return cfg, nil
}

func main() {
	f, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if f.version {
		fmt.Printf("clex version %s\n", Version)
		fmt.Printf("  Commit: %s\n", Commit)
		os.Exit(0)
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	log := newLogger(cfg, os.Stderr)

	if err := run(cfg, f.file, os.Stdin, os.Stdout, log); err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			log.ErrorWithCause(e.Message, e.Underlying, e.Cause, e.Action)
		} else {
			log.Error("clex failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}

// newLogger logs at the configured level; debug runs also record the
// source location of each entry.
func newLogger(cfg *config.Config, out io.Writer) *logger.Logger {
	level, _ := logger.ParseLevel(cfg.LogLevel)
	return logger.New("clex", &logger.Config{
		Level:     level,
		AddSource: level == slog.LevelDebug,
		Output:    out,
	})
}

func run(cfg *config.Config, file string, stdin io.Reader, stdout io.Writer, log *logger.Logger) error {
	if cfg.CreateKeywords {
		if _, err := keywords.Ensure(cfg.Keywords, log); err != nil {
			return err
		}
	}
	kws, err := keywords.LoadFile(cfg.Keywords, log)
	if err != nil {
		return err
	}

	src, name, err := readSource(file, stdin)
	if err != nil {
		return err
	}
	log = log.WithField("document", uuid.NewString()).WithField("source", name)

	res := clex.Analyze(src, kws, &clex.Options{
		Defines:          cfg.Defines,
		KeepLineNumbers:  cfg.KeepLineNumbers,
		SkipSubstitution: !cfg.Substitute,
	})
	log.Debug("Preprocessed", slog.Int("define_count", len(res.Defines)))

	for _, tok := range res.Tokens {
		if tok.Category != clex.Error {
			continue
		}
		log.Warn("Unrecognized character",
			slog.Int("line", tok.Line),
			slog.Int("column", tok.Column),
			slog.String("lexeme", tok.Lexeme),
			slog.String("excerpt", report.Excerpt(res.Source, tok)),
		)
	}

	if err := write(stdout, cfg.Format, res); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputError,
			"Failed to write output",
			"Standard output is closed or not writable",
			"Check where the output is redirected")
	}

	log.Info("Tokenized", slog.Int("tokens", len(res.Tokens)), slog.String("summary", report.Summary(res.Tokens)))
	return nil
}

func readSource(file string, stdin io.Reader) (src, name string, err error) {
	var buf []byte
	if file == "" || file == "-" {
		name = "<stdin>"
		buf, err = io.ReadAll(stdin)
	} else {
		name = file
		buf, err = os.ReadFile(file)
	}
	if err != nil {
		return "", name, errors.SourceReadError(name, err)
	}
	return string(buf), name, nil
}

func write(w io.Writer, format string, res *clex.Result) error {
	switch format {
	case config.FormatTable:
		if err := report.FormatTable(w, res.Tokens); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, report.Summary(res.Tokens))
		return err
	case config.FormatSummary:
		_, err := fmt.Fprintln(w, report.Summary(res.Tokens))
		return err
	case config.FormatSource:
		_, err := io.WriteString(w, res.Source)
		return err
	default:
		return nil
	}
}
