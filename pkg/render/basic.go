package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

const (
	TemplateBasic = "basic"

	imageWidth  = 960
	imageHeight = 540
	marginX     = 32.0
	lineSpacing = 6.0
)

// BasicLayout is the input for the single supported template: a title, a
// short bullet list and a source count.
type BasicLayout struct {
	Title       string
	Bullets     []string
	SourceCount int
}

// BasicRenderer draws a white-background summary card and writes it as PNG
// into its output directory.
type BasicRenderer struct {
	outputDir string
}

func NewBasicRenderer(outputDir string) *BasicRenderer {
	return &BasicRenderer{outputDir: outputDir}
}

// Render writes the PNG artifact named fileName and returns its full path.
func (r *BasicRenderer) Render(fileName string, layout BasicLayout) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	outputPath := filepath.Join(r.outputDir, fileName)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	maxWidth := float64(imageWidth) - marginX*2
	y := 24.0

	y = drawWrapped(dc, "Research: "+layout.Title, marginX, y, maxWidth)
	y += 12

	y = drawWrapped(dc, "Key Points:", marginX, y, maxWidth)
	for _, bullet := range layout.Bullets {
		y = drawWrapped(dc, "- "+bullet, marginX+8, y, maxWidth-8)
	}

	y += 8
	drawWrapped(dc, fmt.Sprintf("Sources: %d", layout.SourceCount), marginX, y, maxWidth)

	if err := dc.SavePNG(outputPath); err != nil {
		return "", fmt.Errorf("save png: %w", err)
	}
	return outputPath, nil
}

// drawWrapped draws text word-wrapped at maxWidth and returns the next y.
// DrawString anchors at the baseline, so each line advances by its height
// before drawing.
func drawWrapped(dc *gg.Context, text string, x, y, maxWidth float64) float64 {
	for _, line := range dc.WordWrap(text, maxWidth) {
		_, h := dc.MeasureString(line)
		y += h
		dc.DrawString(line, x, y)
		y += lineSpacing
	}
	return y
}
