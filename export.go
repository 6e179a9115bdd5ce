package main

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"gridpat/internal/grid"
)

var (
	pngBackground = color.White
	pngGridLine   = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	pngActive     = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	pngCaption    = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// pngCellSize is the on-screen cell size of the web tool: 600px split
// across the grid, kept between 15 and 30 pixels, then zoomed.
func pngCellSize(dim, zoom int) int {
	base := math.Max(minPNGCell, math.Min(maxPNGCell, pngGridSpan/float64(dim)))
	if zoom < 1 {
		zoom = 1
	}
	return int(base) * zoom
}

func renderPNG(p patternView, zoom int) (*gg.Context, error) {
	dim := p.Dimension()
	cell := pngCellSize(dim, zoom)
	margin := cell
	captionHeight := 28

	size := dim * cell
	imageWidth := size + 2*margin
	imageHeight := size + 2*margin + captionHeight

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(pngBackground)
	dc.Clear()

	dc.SetColor(pngActive)
	for i := 0; i < dim*dim; i++ {
		if !p.IsActive(i) {
			continue
		}
		row, col := grid.ToRowCol(i, dim)
		dc.DrawRectangle(float64(margin+col*cell), float64(margin+row*cell), float64(cell), float64(cell))
	}
	dc.Fill()

	dc.SetColor(pngGridLine)
	dc.SetLineWidth(1)
	for i := 0; i <= dim; i++ {
		offset := float64(margin + i*cell)
		dc.DrawLine(offset, float64(margin), offset, float64(margin+size))
		dc.DrawLine(float64(margin), offset, float64(margin+size), offset)
	}
	dc.Stroke()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(pngCaption)
	caption := fmt.Sprintf("%dx%d  %d/%d active", dim, dim, p.ActiveCount(), p.TotalCellCount())
	dc.DrawStringAnchored(caption, float64(imageWidth)/2, float64(margin+size)+float64(captionHeight)/2+float64(margin)/2, 0.5, 0.5)

	return dc, nil
}

func exportPNG(filename string, p patternView, zoom int) error {
	dc, err := renderPNG(p, zoom)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func writePNG(w io.Writer, p patternView, zoom int) error {
	dc, err := renderPNG(p, zoom)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func exportTXT(filename string, p patternView) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.WriteString(file, patternText(p))
	return err
}
