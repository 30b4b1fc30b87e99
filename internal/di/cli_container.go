package di

import (
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/internal/factory"
	"github.com/mikey/snooker/internal/logging"
)

// CLIFlags contains the command line flags shared by the CLI commands
type CLIFlags struct {
	ConfigFile     string
	Format         string
	TrustedDomains []string
	MaxBodySize    int
	Verbose        bool
	JSONLog        bool

	// trustedSet records whether --trusted-domains was given, so an empty
	// flag does not clobber the config file
	trustedSet func() bool
}

// BindFlags registers the flags on a cobra or pflag flag set
func (f *CLIFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigFile, "config", "", "Path to config file (rules, trusted domains, history)")
	fs.StringVar(&f.Format, "format", "text", "Output format: text, json or yaml")
	fs.StringSliceVar(&f.TrustedDomains, "trusted-domains", nil, "Trusted commenter domains or addresses (comma separated)")
	fs.IntVar(&f.MaxBodySize, "max-body-size", 65536, "Maximum comment body size in bytes (0 for no limit)")
	fs.BoolVar(&f.Verbose, "verbose", false, "Enable verbose logging and report every rule")
	fs.BoolVar(&f.JSONLog, "json-log", false, "Output logs in JSON format")

	f.trustedSet = func() bool { return fs.Changed("trusted-domains") }
}

// BuildCLIContainer creates and configures a dependency injection container
// for the CLI application. Reports are written to out.
func BuildCLIContainer(flags *CLIFlags, out io.Writer) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		return configFromFlags(flags, logger)
	}); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	// Point the CLI filter at the caller's writer
	if err := container.Decorate(func(f *factory.FilterFactory) *factory.FilterFactory {
		f.SetOutput(out)
		return f
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// configFromFlags loads the config file, if any, and applies the flags on top
func configFromFlags(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	if flags.ConfigFile != "" {
		var err error
		cfg, err = config.NewWithFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// A one-shot check has no history store unless a config file asks
		// for one
		v := config.NewEmptyViper()
		v.Set("history.enabled", false)
		v.Set("history.record", false)
		cfg = config.NewFromViper(v)
	}

	v := cfg.GetViper()
	v.Set("server.filter_type", "cli")
	v.Set("server.max_body_size", flags.MaxBodySize)
	v.Set("cli.verbose", flags.Verbose)
	v.Set("cli.format", flags.Format)
	if len(flags.TrustedDomains) > 0 || (flags.trustedSet != nil && flags.trustedSet()) {
		v.Set("spam.trusted_domains", flags.TrustedDomains)
	}

	return cfg, nil
}
