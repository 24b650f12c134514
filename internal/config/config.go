// Package config loads overlay settings from defaults, an optional TOML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"DoodleBoard/internal/render"
)

const (
	DefaultAddr  = ":8888"
	AddrEnv      = "DOODLE_ADDR"
	DefaultColor = "#2196f3"
	// Largest surface side a client may ask for, in pixels.
	DefaultMaxViewport = 8192
)

type Config struct {
	LiveWidth   float32 `toml:"live_width"`
	ReplayWidth float32 `toml:"replay_width"`
	Color       string  `toml:"color"`
	ReplayOvals bool    `toml:"replay_ovals"`

	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`

	Width       int `toml:"width"`
	Height      int `toml:"height"`
	MaxViewport int `toml:"max_viewport"`
}

// Default returns the stock settings: live strokes are 2 wide, replayed
// strokes 5.
func Default() Config {
	return Config{
		LiveWidth:   2,
		ReplayWidth: 5,
		Color:       DefaultColor,
		Addr:        DefaultAddr,
		Width:       1024,
		Height:      768,
		MaxViewport: DefaultMaxViewport,
	}
}

// Load starts from Default, applies the TOML file at path when path is not
// empty, then the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
		}
	}
	if addr := os.Getenv(AddrEnv); addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.LiveWidth <= 0 {
		errs = append(errs, fmt.Errorf("live_width must be positive, got %v", c.LiveWidth))
	}
	if c.ReplayWidth <= 0 {
		errs = append(errs, fmt.Errorf("replay_width must be positive, got %v", c.ReplayWidth))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.MaxViewport <= 0 {
		errs = append(errs, fmt.Errorf("max_viewport must be positive, got %d", c.MaxViewport))
	} else if c.Width > c.MaxViewport || c.Height > c.MaxViewport {
		errs = append(errs, fmt.Errorf("viewport %dx%d exceeds max_viewport %d", c.Width, c.Height, c.MaxViewport))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	return errors.Join(errs...)
}

// ClampViewport caps each side of a requested surface size at
// MaxViewport.
func (c Config) ClampViewport(width, height int) (int, int) {
	return min(width, c.MaxViewport), min(height, c.MaxViewport)
}

// StrokeColor parses Color. Unparseable values fall back to black, as
// gg.Hex does.
func (c Config) StrokeColor() color.NRGBA {
	return color.NRGBAModel.Convert(gg.Hex(c.Color).Color()).(color.NRGBA)
}

// LiveStyle is the style of pencil segments and ovals as they are drawn.
func (c Config) LiveStyle() render.Style {
	return render.Style{Width: c.LiveWidth, Cap: render.CapRound, Color: c.StrokeColor()}
}

// ReplayStyle is the style used when the stroke log is redrawn.
func (c Config) ReplayStyle() render.Style {
	return render.Style{Width: c.ReplayWidth, Cap: render.CapRound, Color: c.StrokeColor()}
}
