package config

// Config is the top-level viewer configuration, corresponding to gallery-zoom.yml.
type Config struct {
	Zoom   ZoomConfig   `yaml:"zoom" koanf:"zoom"`
	Window WindowConfig `yaml:"window" koanf:"window"`
	Font   FontConfig   `yaml:"font" koanf:"font"`
	Log    LogConfig    `yaml:"log" koanf:"log"`
	// Watch re-arms the viewer when the displayed file changes on disk.
	Watch bool `yaml:"watch" koanf:"watch"`
}

// ZoomConfig tunes the zoom controller.
type ZoomConfig struct {
	Step   float64 `yaml:"step" koanf:"step"`
	Replay string  `yaml:"replay" koanf:"replay"`
}

type WindowConfig struct {
	Width  int    `yaml:"width" koanf:"width"`
	Height int    `yaml:"height" koanf:"height"`
	Title  string `yaml:"title" koanf:"title"`
}

type FontConfig struct {
	Path string  `yaml:"path" koanf:"path"`
	Size float64 `yaml:"size" koanf:"size"`
}

type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}
