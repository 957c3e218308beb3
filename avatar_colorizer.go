package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kevin-cantwell/dotmatrix"
)

// avatarTone prepares a photo for braille conversion: unsharp mask, then
// gamma, then contrast around mid grey.
type avatarTone struct {
	Sharpen  float64 // 1.0 = none
	Gamma    float64 // <1.0 darkens midtones
	Contrast float64 // 1.0 = none
}

var defaultAvatarTone = avatarTone{Sharpen: 10, Gamma: 0.1, Contrast: 0.8}

// Filter implements dotmatrix.Filter.
func (t avatarTone) Filter(img image.Image) image.Image {
	bounds := img.Bounds()
	blurred := gaussianBlur(img)
	out := image.NewRGBA(bounds)

	var gammaLUT [256]uint8
	for i := range gammaLUT {
		gammaLUT[i] = clampChannel(math.Pow(float64(i)/255, 1/t.Gamma) * 255)
	}

	tone := func(orig, blur uint32) uint8 {
		o, b := float64(orig>>8), float64(blur>>8)
		v := clampChannel(o + (o-b)*(t.Sharpen-1))
		v = gammaLUT[v]
		return clampChannel((float64(v)-128)*t.Contrast + 128)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			br, bg, bb, _ := blurred.At(x, y).RGBA()
			out.Set(x, y, color.RGBA{R: tone(r, br), G: tone(g, bg), B: tone(b, bb), A: uint8(a >> 8)})
		}
	}
	return out
}

// gaussianBlur is a 3x3 Gaussian blur with edge clamping.
func gaussianBlur(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	kernel := [3][3]float64{{1, 2, 1}, {2, 4, 2}, {1, 2, 1}}

	clamp := func(v, lo, hi int) int { return min(max(v, lo), hi-1) }

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var sum [3]float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					px := clamp(x+kx, bounds.Min.X, bounds.Max.X)
					py := clamp(y+ky, bounds.Min.Y, bounds.Max.Y)
					r, g, b, _ := img.At(px, py).RGBA()
					w := kernel[ky+1][kx+1] / 16
					sum[0] += float64(r>>8) * w
					sum[1] += float64(g>>8) * w
					sum[2] += float64(b>>8) * w
				}
			}
			_, _, _, a := img.At(x, y).RGBA()
			out.Set(x, y, color.RGBA{R: uint8(sum[0]), G: uint8(sum[1]), B: uint8(sum[2]), A: uint8(a >> 8)})
		}
	}
	return out
}

func clampChannel(v float64) uint8 {
	return uint8(min(max(v, 0), 255))
}

// avatarRenderer draws braille avatars in the colours of a theme.
type avatarRenderer struct {
	palette  []color.RGBA
	fallback color.RGBA
	tone     avatarTone
}

func newAvatarRenderer(t Theme) *avatarRenderer {
	hexes := []string{
		t.Black, t.Red, t.Green, t.Yellow, t.Blue, t.Magenta, t.Cyan, t.White,
		t.BrightBlack, t.BrightRed, t.BrightGreen, t.BrightYellow,
		t.BrightBlue, t.BrightMagenta, t.BrightCyan, t.BrightWhite,
		t.Foreground,
	}
	r := &avatarRenderer{tone: defaultAvatarTone}
	for _, h := range hexes {
		if c, ok := parseHexColor(h); ok {
			r.palette = append(r.palette, c)
		}
	}
	r.fallback, _ = parseHexColor(t.Foreground)
	return r
}

// Render converts img to braille, colouring each cell with the palette
// colour nearest to the average of its 2x4 block.
func (r *avatarRenderer) Render(img image.Image) (string, error) {
	var buf bytes.Buffer
	printer := dotmatrix.NewPrinter(&buf, &dotmatrix.Config{
		Filter: r.tone,
		Drawer: draw.FloydSteinberg,
	})
	if err := printer.Print(img); err != nil {
		return "", fmt.Errorf("failed to render avatar: %w", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	bounds := img.Bounds()

	var out strings.Builder
	for row, line := range lines {
		col := 0
		for _, ch := range line {
			x, y := bounds.Min.X+col*2, bounds.Min.Y+row*4
			col++
			if ch == ' ' || ch == '⠀' {
				out.WriteRune(' ')
				continue
			}
			if x >= bounds.Max.X || y >= bounds.Max.Y {
				out.WriteRune(ch)
				continue
			}
			c := r.nearest(r.blockColor(img, x, y))
			out.WriteString(fg(hexColor(c)).Render(string(ch)))
		}
		if row < len(lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

// blockColor averages the visible, non-black pixels of a 2x4 block.
func (r *avatarRenderer) blockColor(img image.Image, x0, y0 int) color.RGBA {
	bounds := img.Bounds()
	var sum [3]int
	n := 0
	for y := y0; y < y0+4 && y < bounds.Max.Y; y++ {
		for x := x0; x < x0+2 && x < bounds.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca < 0x8000 || (cr < 0x2000 && cg < 0x2000 && cb < 0x2000) {
				continue
			}
			sum[0] += int(cr >> 8)
			sum[1] += int(cg >> 8)
			sum[2] += int(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return r.fallback
	}
	return color.RGBA{R: uint8(sum[0] / n), G: uint8(sum[1] / n), B: uint8(sum[2] / n), A: 255}
}

// nearest finds the closest palette colour by Euclidean RGB distance.
func (r *avatarRenderer) nearest(target color.RGBA) color.RGBA {
	if len(r.palette) == 0 {
		return target
	}
	best := r.palette[0]
	bestDist := math.MaxFloat64
	for _, c := range r.palette {
		dr := float64(target.R) - float64(c.R)
		dg := float64(target.G) - float64(c.G)
		db := float64(target.B) - float64(c.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func parseHexColor(s string) (color.RGBA, bool) {
	var c color.RGBA
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{}, false
	}
	c.A = 255
	return c, true
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// avatarPlaceholder is shown until the avatar arrives, or when it cannot be
// fetched: the login's initial in a rounded box.
func avatarPlaceholder(login string) string {
	initial := "?"
	if login != "" {
		initial = strings.ToUpper(login[:1])
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.Border)).
		Width(avatarPixels/2-2).
		Height(avatarPixels/4-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color(CurrentTheme.Gray)).
		Bold(true).
		Render(initial)
}
