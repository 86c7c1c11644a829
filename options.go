package s3fs

import (
	"fmt"
	"os"

	"github.com/mwantia/s3fs/log"
)

type Options struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	Logger        *log.Logger

	Observer Observer

	FileMode os.FileMode
	DirMode  os.FileMode

	Sync        bool // fsync content and parent directory on commit
	CreateRoot  bool // create the root directory if missing
	StrictNames bool // enforce S3 bucket and key naming rules
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		LogLevel:   log.Info,
		Observer:   nopObserver{},
		FileMode:   0o644,
		DirMode:    0o755,
		CreateRoot: true,
	}
}

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return log.NewLogger("s3fs", o.LogLevel, o.LogFile, o.NoTerminalLog)
}

func WithLogLevel(logLevel log.LogLevel) Option {
	return func(opts *Options) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithLogFile(logFile string) Option {
	return func(opts *Options) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithoutTerminalLog() Option {
	return func(opts *Options) error {
		opts.NoTerminalLog = true
		return nil
	}
}

// WithLogger replaces the logger built from the log options.
func WithLogger(logger *log.Logger) Option {
	return func(opts *Options) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		opts.Logger = logger
		return nil
	}
}

func WithObserver(observer Observer) Option {
	return func(opts *Options) error {
		if observer == nil {
			return fmt.Errorf("observer must not be nil")
		}
		opts.Observer = observer
		return nil
	}
}

func WithFileMode(mode os.FileMode) Option {
	return func(opts *Options) error {
		if mode.Perm() == 0 {
			return fmt.Errorf("file mode %v grants no permissions", mode)
		}
		opts.FileMode = mode.Perm()
		return nil
	}
}

func WithDirMode(mode os.FileMode) Option {
	return func(opts *Options) error {
		if mode.Perm() == 0 {
			return fmt.Errorf("dir mode %v grants no permissions", mode)
		}
		opts.DirMode = mode.Perm()
		return nil
	}
}

func WithSync() Option {
	return func(opts *Options) error {
		opts.Sync = true
		return nil
	}
}

func WithoutCreateRoot() Option {
	return func(opts *Options) error {
		opts.CreateRoot = false
		return nil
	}
}

func WithStrictNames() Option {
	return func(opts *Options) error {
		opts.StrictNames = true
		return nil
	}
}
