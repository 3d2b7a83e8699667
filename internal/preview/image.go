package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/model"
)

// Colors for the rendered thumbnail.
var (
	backgroundColor = color.RGBA{R: 24, G: 24, B: 24, A: 255}
	tilingFill      = color.RGBA{R: 58, G: 95, B: 135, A: 255}
	floatingFill    = color.RGBA{R: 135, G: 95, B: 58, A: 255}
	outlineColor    = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	textColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textOutline     = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// RenderPNG rasterizes the window geometry of a layout tree to a PNG image.
// Scale maps window-manager pixels to image pixels, so 0.15 turns a
// 1920x1080 workspace into a 288x162 thumbnail. Each leaf window is drawn
// as a filled, outlined box labeled with its title or class; floating
// windows get a different fill.
func RenderPNG(root model.Node, scale float64) ([]byte, error) {
	if scale <= 0 || scale > 1 {
		return nil, errdefs.New(errdefs.CodeInvalidInput, "scale %v out of range (0, 1]", scale)
	}
	bounds := treeBounds(root)
	if bounds.Empty() {
		return nil, errdefs.New(errdefs.CodeInvalidInput, "layout tree carries no geometry to render")
	}

	w := int(float64(bounds.Dx())*scale + 0.5)
	h := int(float64(bounds.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	drawNode(img, root, bounds.Min, scale, false)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// treeBounds returns the union of every rect in the tree, in window-manager
// pixels. Zero rects contribute nothing.
func treeBounds(n model.Node) image.Rectangle {
	r := image.Rect(n.Rect.X, n.Rect.Y, n.Rect.X+n.Rect.Width, n.Rect.Y+n.Rect.Height)
	for _, child := range n.Nodes {
		r = r.Union(treeBounds(child))
	}
	for _, child := range n.FloatingNodes {
		r = r.Union(treeBounds(child))
	}
	return r
}

func drawNode(img *image.RGBA, n model.Node, origin image.Point, scale float64, floating bool) {
	if n.IsLeaf() {
		drawLeaf(img, n, origin, scale, floating)
		return
	}
	for _, child := range n.Nodes {
		drawNode(img, child, origin, scale, floating)
	}
	for _, child := range n.FloatingNodes {
		drawNode(img, child, origin, scale, true)
	}
}

func drawLeaf(img *image.RGBA, n model.Node, origin image.Point, scale float64, floating bool) {
	x1 := int(float64(n.Rect.X-origin.X) * scale)
	y1 := int(float64(n.Rect.Y-origin.Y) * scale)
	x2 := x1 + int(float64(n.Rect.Width)*scale)
	y2 := y1 + int(float64(n.Rect.Height)*scale)

	fill := tilingFill
	if floating {
		fill = floatingFill
	}
	fillRectangle(img, x1, y1, x2, y2, fill)
	drawRectangle(img, x1, y1, x2, y2, outlineColor)

	label := leafLabel(n)
	// Truncate to what fits inside the box at 7px per glyph.
	if max := (x2 - x1 - 4) / 7; max < 1 {
		label = ""
	} else if runes := []rune(label); len(runes) > max {
		label = string(runes[:max])
	}
	if label != "" {
		drawTextWithOutline(img, label, (x1+x2)/2, (y1+y2)/2, textColor, textOutline)
	}
}

func leafLabel(n model.Node) string {
	if n.Name != nil && *n.Name != "" {
		return *n.Name
	}
	return n.WindowProperties["class"]
}

// isWithinBounds checks if a point is within the image bounds
func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// fillRectangle fills a rectangle on the image, clamped to its bounds.
func fillRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// drawRectangle draws a rectangle outline on the image
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()

	// Clamp to image bounds
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}

	if x2 <= x1 || y2 <= y1 {
		return // Empty rectangle
	}

	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text centered at (x, y) with a one-pixel outline
// so labels stay readable on any fill.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13 glyphs are 7 pixels wide and 13 tall.
	offsetX := x - len(text)*7/2
	baseline := y + 5

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6((offsetX + dx) * 64),
					Y: fixed.Int26_6((baseline + dy) * 64),
				},
			}
			d.DrawString(text)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(offsetX * 64),
			Y: fixed.Int26_6(baseline * 64),
		},
	}
	d.DrawString(text)
}
