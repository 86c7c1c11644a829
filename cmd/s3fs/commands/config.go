package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwantia/s3fs"
	"github.com/mwantia/s3fs/log"
)

// config is the resolved CLI configuration. Precedence: flags, then S3FS_*
// environment variables, then defaults.
type config struct {
	Root        string `mapstructure:"root"`
	LogLevel    string `mapstructure:"log-level"`
	LogFile     string `mapstructure:"log-file"`
	StrictNames bool   `mapstructure:"strict-names"`
	Sync        bool   `mapstructure:"sync"`
	MetricsAddr string `mapstructure:"metrics-addr"`
}

var v = newViper()

func newViper() *viper.Viper {
	v := viper.New()
	// Example: S3FS_LOG_LEVEL=debug
	v.SetEnvPrefix("S3FS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Only fails for a nil flag.
		_ = v.BindPFlag(f.Name, f)
	})
}

func loadConfig() (*config, error) {
	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if cfg.Root == "" {
		return nil, fmt.Errorf("no storage root configured; use --root or S3FS_ROOT")
	}

	return &cfg, nil
}

// openFileSystem opens the configured root with the given extra options.
func openFileSystem(cfg *config, opts ...s3fs.Option) (*s3fs.FileSystem, *log.Logger, error) {
	level, err := log.Parse(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewLogger("s3fs", level, cfg.LogFile, false)

	opts = append([]s3fs.Option{s3fs.WithLogger(logger)}, opts...)
	if cfg.StrictNames {
		opts = append(opts, s3fs.WithStrictNames())
	}
	if cfg.Sync {
		opts = append(opts, s3fs.WithSync())
	}

	fsys, err := s3fs.New(cfg.Root, opts...)
	if err != nil {
		logger.Close()
		return nil, nil, err
	}

	return fsys, logger, nil
}
