// Package config reads the framecast YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/matt-g-everett/framecast/scene"
	"github.com/matt-g-everett/framecast/stream"
	"gopkg.in/yaml.v2"
)

// Backends that can be selected in the render section.
var Backends = []string{"ffmpeg", "png", "mqtt", "preview"}

type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Output struct {
		Dir  string `yaml:"dir"`
		Name string `yaml:"name"`
	} `yaml:"output"`
	Render struct {
		Composition string `yaml:"composition"`
		Backend     string `yaml:"backend"`
		Workers     int    `yaml:"workers"`
		// Quality and Easing override the composition defaults when set.
		Quality scene.Quality `yaml:"quality"`
		Easing  string        `yaml:"easing"`
	} `yaml:"render"`
	FFmpeg struct {
		Binary string   `yaml:"binary"`
		Codec  string   `yaml:"codec"`
		PixFmt string   `yaml:"pixFmt"`
		Flags  []string `yaml:"flags"`
	} `yaml:"ffmpeg"`
	Mqtt    stream.Config `yaml:"mqtt"`
	Preview struct {
		Realtime bool `yaml:"realtime"`
	} `yaml:"preview"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.Log.Level = "info"
	c.Output.Dir = "out"
	c.Render.Backend = "ffmpeg"
	c.FFmpeg.Binary = "ffmpeg"
	c.FFmpeg.Codec = "libx264"
	c.FFmpeg.PixFmt = "yuv420p"
	c.Mqtt = stream.DefaultConfig()
	c.Preview.Realtime = true
	c.Server.Addr = ":3000"
	return c
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	decoder := yaml.NewDecoder(r)
	decoder.SetStrict(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if !isBackend(c.Render.Backend) {
		return &scene.InvalidConfigError{Field: "render.backend", Value: c.Render.Backend,
			Reason: "expected one of " + strings.Join(Backends, ", ")}
	}
	if c.Render.Workers < 0 {
		return &scene.InvalidConfigError{Field: "render.workers", Value: c.Render.Workers}
	}
	if c.Render.Quality != "" {
		if err := c.Render.Quality.Validate(); err != nil {
			return err
		}
	}
	if _, err := scene.ParseEasing(c.Render.Easing); err != nil {
		return err
	}
	if c.Render.Backend == "mqtt" {
		return c.Mqtt.Validate()
	}
	return nil
}

// LogLevel parses the log section.
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, &scene.InvalidConfigError{Field: "log.level", Value: c.Log.Level, Reason: err.Error()}
	}
	return l, nil
}

func isBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}
