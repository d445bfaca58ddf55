package main

import "image/color"

const (
	// --- HUD ---
	HUDMargin     = 10
	HUDLineHeight = 16

	// --- Output ---
	ScreenshotFile = "screenshot.png"
)

var (
	// --- Colors ---
	ColorBackground = color.RGBA{18, 18, 22, 255}
	ColorFrame      = color.RGBA{90, 90, 100, 255}
)
