// Package overlay renders a diagnostic image of the reference-star
// selection: the thinning grid, the centering margin, and a marker per
// selected star. Useful for eyeballing why a field solves badly.
package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"starsieve/pkg/catalog"
	"starsieve/pkg/refstar"
)

// RenderSelection generates a JPG visualization of the reference set and
// writes it to a file.
func RenderSelection(refs []catalog.Candidate, width, height int, g refstar.Grid, outputPath string) error {
	img, err := renderSelectionImage(refs, width, height, g)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create overlay file: %w", err)
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// RenderSelectionBytes generates the visualization and returns it as JPEG bytes.
func RenderSelectionBytes(refs []catalog.Candidate, width, height int, g refstar.Grid) ([]byte, error) {
	img, err := renderSelectionImage(refs, width, height, g)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderSelectionImage creates the overlay image in memory.
func renderSelectionImage(refs []catalog.Candidate, width, height int, g refstar.Grid) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	// Render at reduced resolution (800px wide, proportional height)
	const targetWidth = 800
	scale := float64(targetWidth) / float64(width)
	imgW := targetWidth
	imgH := int(float64(height) * scale)
	if imgH < 100 {
		imgH = 100
	}

	// Reserve space for summary text at bottom
	summaryH := 40
	totalH := imgH + summaryH

	img := image.NewRGBA(image.Rect(0, 0, imgW, totalH))

	// Black background
	for y := 0; y < totalH; y++ {
		for x := 0; x < imgW; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0, 255})
		}
	}

	cellsX, cellsY := g.Cells(width, height)
	thinned := cellsX*cellsY >= 4

	if thinned {
		x0 := (width % g.Size) / 2
		y0 := (height % g.Size) / 2

		// Shade the centering margin
		marginColor := color.RGBA{45, 45, 45, 255}
		mx := int(float64(x0) * scale)
		my := int(float64(y0) * scale)
		for y := 0; y < imgH; y++ {
			for x := 0; x < imgW; x++ {
				if x < mx || y < my {
					img.Set(x, y, marginColor)
				}
			}
		}

		// Grid lines
		gridColor := color.RGBA{90, 90, 90, 255}
		for i := 0; i <= cellsX; i++ {
			px := int(float64(x0+i*g.Size) * scale)
			if px >= imgW {
				break
			}
			for y := my; y < imgH; y++ {
				img.Set(px, y, gridColor)
			}
		}
		for j := 0; j <= cellsY; j++ {
			py := int(float64(y0+j*g.Size) * scale)
			if py >= imgH {
				break
			}
			for x := mx; x < imgW; x++ {
				img.Set(x, py, gridColor)
			}
		}
	}

	// Star markers, sized by flux relative to the set
	if len(refs) > 0 {
		maxFlux := refs[0].Flux
		for _, c := range refs {
			if c.Flux > maxFlux {
				maxFlux = c.Flux
			}
		}
		starColor := color.RGBA{120, 220, 120, 255}
		for _, c := range refs {
			cx := int(c.X * scale)
			cy := int(c.Y * scale)
			radius := 2
			if maxFlux > 0 {
				radius = 2 + int(3*math.Sqrt(c.Flux/maxFlux))
			}
			drawCircle(img, cx, cy, radius, starColor)
		}
	}

	// Summary text at bottom
	face := basicfont.Face7x13
	summaryColor := color.RGBA{220, 220, 220, 255}
	summaryY := imgH + 15

	mode := fmt.Sprintf("grid %dpx, cap %d (%dx%d cells)", g.Size, g.CellCap, cellsX, cellsY)
	if !thinned {
		mode = "unthinned (image spans fewer than 4 cells)"
	}
	drawText(img, face, fmt.Sprintf("Reference stars: %d", len(refs)), 10, summaryY, summaryColor)
	drawText(img, face, mode, 10, summaryY+18, summaryColor)

	return img, nil
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCircle draws a circle outline using midpoint algorithm.
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	x := radius
	y := 0
	err := 0

	for x >= y {
		img.Set(cx+x, cy+y, c)
		img.Set(cx+y, cy+x, c)
		img.Set(cx-y, cy+x, c)
		img.Set(cx-x, cy+y, c)
		img.Set(cx-x, cy-y, c)
		img.Set(cx-y, cy-x, c)
		img.Set(cx+y, cy-x, c)
		img.Set(cx+x, cy-y, c)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}
