// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds display and playback settings.
type ViewerConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	VSync      bool       `yaml:"vsync"`
	Background [3]float32 `yaml:"background"`
	Animation  string     `yaml:"animation"` // animation document played on load
}

// AssetsConfig holds asset location settings.
type AssetsConfig struct {
	Dir    string `yaml:"dir"`    // asset root directory
	Avatar string `yaml:"avatar"` // avatar descriptor path, relative to Dir
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:      800,
			Height:     600,
			VSync:      true,
			Background: [3]float32{0.12, 0.12, 0.16},
			Animation:  "animations/idle.json",
		},
		Assets: AssetsConfig{
			Dir:    "assets",
			Avatar: "avatar.json",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
