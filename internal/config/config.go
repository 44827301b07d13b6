// Package config holds sandbox configuration: the screen metrics a window
// reports and the YAML file format they are loaded from.
//
// All sizes are integers. The device pixel ratio is stored in thousandths
// (1000 == 1.0) so configuration stays free of floats and compares exactly.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ScreenMetrics describes the screen a sandbox's window pretends to run on.
type ScreenMetrics struct {
	Width                 int `yaml:"width"`
	Height                int `yaml:"height"`
	AvailWidth            int `yaml:"avail_width"`
	AvailHeight           int `yaml:"avail_height"`
	ColorDepth            int `yaml:"color_depth"`
	PixelDepth            int `yaml:"pixel_depth"`
	DevicePixelRatioMilli int `yaml:"device_pixel_ratio_milli"`
}

// Config is the top-level configuration document.
//
//	screen:
//	  width: 1920
//	  height: 1080
type Config struct {
	Screen ScreenMetrics `yaml:"screen"`
}

// Default returns the metrics used when no configuration is supplied.
func Default() ScreenMetrics {
	return ScreenMetrics{
		Width:                 1024,
		Height:                768,
		AvailWidth:            1024,
		AvailHeight:           768,
		ColorDepth:            24,
		PixelDepth:            24,
		DevicePixelRatioMilli: 1000,
	}
}

// Validate reports the first inconsistency in m.
func (m ScreenMetrics) Validate() error {
	switch {
	case m.Width <= 0 || m.Height <= 0:
		return fmt.Errorf("screen size must be positive, got %dx%d", m.Width, m.Height)
	case m.AvailWidth <= 0 || m.AvailHeight <= 0:
		return fmt.Errorf("available size must be positive, got %dx%d", m.AvailWidth, m.AvailHeight)
	case m.AvailWidth > m.Width || m.AvailHeight > m.Height:
		return fmt.Errorf("available size %dx%d exceeds screen size %dx%d",
			m.AvailWidth, m.AvailHeight, m.Width, m.Height)
	case m.ColorDepth <= 0 || m.PixelDepth <= 0:
		return fmt.Errorf("color and pixel depth must be positive")
	case m.DevicePixelRatioMilli <= 0:
		return fmt.Errorf("device pixel ratio must be positive, got %d/1000", m.DevicePixelRatioMilli)
	}
	return nil
}

// Parse decodes a YAML configuration document. Fields that are absent keep
// their Default values; unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Config{Screen: Default()}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Screen.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid screen metrics: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}
