package config

import "gallery-zoom/zoom"

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = "gallery-zoom.yml"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Zoom: ZoomConfig{
			Step:   zoom.DefaultZoomStep,
			Replay: zoom.ReplayLastPointer.String(),
		},
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Gallery Zoom",
		},
		Font: FontConfig{
			Path: "fonts/Roboto-Regular.ttf",
			Size: 16,
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: true,
	}
}
