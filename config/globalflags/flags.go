// Package globalflags registers command-line flags for config.GlobalConfig
// and builds the *zap.Logger threaded through config.GlobalConfig.Logger,
// mirroring the teacher's cli/logflags.Flags{Config, Open()} shape.
package globalflags

import (
	"flag"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mdxtodax/unmdx/config"
)

type Flags struct {
	Config  *config.GlobalConfig
	verbose bool
}

func New(c *config.GlobalConfig) *Flags {
	return &Flags{Config: c}
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.Config.Debug, "global.debug", f.Config.Debug, "attach parse tree and pass-by-pass IR to metadata")
	fs.BoolVar(&f.Config.FailFast, "global.fail_fast", f.Config.FailFast, "stop at first error")
	fs.BoolVar(&f.Config.EnableCaching, "global.enable_caching", f.Config.EnableCaching, "cache (text, config) -> (IR, outputs)")

	fs.BoolVar(&f.verbose, "verbose", false, "shorthand for -global.debug plus info-level logging")
	fs.BoolVar(&f.verbose, "v", false, "shorthand for -verbose")
}

// Open builds the logger config.GlobalConfig.Logger should hold: an
// info-level console logger under --verbose, otherwise a no-op logger,
// matching the teacher's logger.New but scaled down to the one flag this
// CLI actually needs.
func (f *Flags) Open() (*zap.Logger, error) {
	if f.verbose {
		f.Config.Debug = true
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		logger, err := cfg.Build()
		if err != nil {
			return nil, err
		}
		f.Config.Logger = logger
		return logger, nil
	}
	f.Config.Logger = zap.NewNop()
	return f.Config.Logger, nil
}
