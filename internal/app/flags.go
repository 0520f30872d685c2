package app

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/palette"
)

// DebugLogPath is where -debug writes its log.
const DebugLogPath = "./pixelgen-debug.log"

// Config represents the command-line parameters for the application.
type Config struct {
	Density    float64
	Palette    string
	Seed       int64
	TPS        int
	ConfigPath string
	Fullscreen bool
	NoOverlay  bool
	Debug      bool
	Width      int
	Height     int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := config.Default()
	return &Config{
		Density: d.Density,
		Palette: d.Palette.String(),
		TPS:     60,
		Width:   1280,
		Height:  720,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Float64Var(&c.Density, "density", c.Density, "art pixels along the viewport height")
	fs.StringVar(&c.Palette, "palette", c.Palette, "palette name")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 picks one from the clock")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "key=value options file applied over the flags")
	fs.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "start fullscreen")
	fs.BoolVar(&c.NoOverlay, "no-overlay", c.NoOverlay, "hide the options panel")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write a debug log to "+DebugLogPath)
	fs.IntVar(&c.Width, "width", c.Width, "initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height")
}

// Options resolves the initial configuration state: defaults, then flags,
// then the options file if one was given. A bad file is logged and skipped.
func (c *Config) Options(logger *zap.Logger) (config.Options, error) {
	o := config.Default()
	o.Density = c.Density
	id, err := palette.Parse(c.Palette)
	if err != nil {
		return o, err
	}
	o.Palette = id
	o.Overlay = !c.NoOverlay
	if err := o.Validate(); err != nil {
		return o, err
	}
	if c.ConfigPath != "" {
		loaded, err := config.Load(c.ConfigPath, o)
		if err != nil {
			if logger == nil {
				logger = zap.NewNop()
			}
			logger.Warn("options file ignored", zap.String("path", c.ConfigPath), zap.Error(err))
		}
		o = loaded
	}
	return o, nil
}

// ResolvedSeed returns the seed, drawing one from the clock when unset.
func (c *Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// OpenLogger returns the process logger. With -debug it appends to
// DebugLogPath; otherwise it discards. The returned closer is never nil.
func (c *Config) OpenLogger() (*zap.Logger, func() error) {
	return c.openLogger(DebugLogPath)
}

func (c *Config) openLogger(path string) (*zap.Logger, func() error) {
	nop := func() error { return nil }
	if !c.Debug {
		return zap.NewNop(), nop
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "debug log open error:", err)
		return zap.NewNop(), nop
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), zapcore.DebugLevel)
	l := zap.New(core).Named("pixelgen")
	l.Debug("debug logging enabled")
	return l, func() error {
		_ = l.Sync()
		return f.Close()
	}
}
