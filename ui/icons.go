// Package ui provides the graphical user interface for Expense Tray.
// This file contains icon generation for the notification area.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/yllada/expense-tray/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	RimColor    color.RGBA
	SymbolColor color.RGBA
}

// DefaultIconConfig returns the coin icon colors.
func DefaultIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{229, 165, 10, 255},  // Amber
		RimColor:    color.RGBA{152, 106, 68, 255},  // Bronze
		SymbolColor: color.RGBA{255, 255, 255, 255}, // White
	}
}

// IconGenerator generates PNG icons for the notification area.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawCoin(img)
	g.drawBars(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		common.LogError("Failed to encode tray icon: %v", err)
		return nil
	}
	return buf.Bytes()
}

// drawCoin draws a filled disc with a one-pixel rim.
func (g *IconGenerator) drawCoin(img *image.RGBA) {
	size := float64(g.config.Size)
	center := size / 2
	radius := size/2 - 1

	for y := 0; y < g.config.Size; y++ {
		for x := 0; x < g.config.Size; x++ {
			d := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			switch {
			case d > radius:
			case d > radius-1.5:
				img.Set(x, y, g.config.RimColor)
			default:
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// drawBars draws three ascending bars, a small spending chart.
func (g *IconGenerator) drawBars(img *image.RGBA) {
	c := g.config.SymbolColor
	size := g.config.Size
	base := size*3/4 - 1
	width := size / 11
	if width < 1 {
		width = 1
	}

	for i, height := range []int{size / 5, size / 3, size / 2} {
		left := size/4 + i*(width+1)*3/2
		for x := left; x < left+width && x < size; x++ {
			for y := base - height; y <= base; y++ {
				if y >= 0 {
					img.Set(x, y, c)
				}
			}
		}
	}
}

// GenerateTrayIcon generates the default tray icon.
func GenerateTrayIcon() []byte {
	return NewIconGenerator(DefaultIconConfig()).Generate()
}
