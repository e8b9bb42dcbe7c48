package preview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/go-drift/animwrap/pkg/transform"
)

// Canvas describes the output image.
type Canvas struct {
	Width, Height int
	Background    color.Color
	// RingColor paints ripple rings. Nil means opaque white.
	RingColor color.Color
	// RingWidth is the ring stroke width in pixels. Zero means 3.
	RingWidth float64
}

// DefaultCanvas is a 320x240 dark canvas.
var DefaultCanvas = Canvas{Width: 320, Height: 240, Background: color.RGBA{0x20, 0x22, 0x28, 0xff}}

// Swatch returns a solid square of side size, used when no child image is
// supplied.
func Swatch(size int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Render draws child centered on the canvas with tf applied.
func Render(canvas Canvas, child image.Image, tf transform.Transform) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	bg := canvas.Background
	if bg == nil {
		bg = color.Transparent
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	sb := child.Bounds()
	anchor := transform.Offset{X: float64(sb.Min.X) + float64(sb.Dx())/2, Y: float64(sb.Min.Y) + float64(sb.Dy())/2}
	center := transform.Offset{X: float64(canvas.Width) / 2, Y: float64(canvas.Height) / 2}

	if tf.Ring != nil {
		halfDiagonal := math.Hypot(float64(sb.Dx()), float64(sb.Dy())) / 2
		drawRing(dst, canvas, center.Add(tf.Translate), halfDiagonal*tf.Ring.Scale, tf.Ring.Opacity)
	}

	if tf.Opacity <= 0 || tf.Scale == 0 {
		return dst
	}
	m := tf.Matrix(anchor)
	m[2] += center.X - anchor.X
	m[5] += center.Y - anchor.Y

	var opts *draw.Options
	if tf.Opacity < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(tf.Opacity * 0xff))})}
	}
	draw.BiLinear.Transform(dst, m, child, sb, draw.Over, opts)
	return dst
}

// drawRing fills an annulus: the outer circle wound one way, the inner the
// other, so the rasterizer cancels the middle.
func drawRing(dst *image.RGBA, canvas Canvas, center transform.Offset, radius, opacity float64) {
	width := canvas.RingWidth
	if width <= 0 {
		width = 3
	}
	if radius <= 0 || opacity <= 0 {
		return
	}
	ringColor := canvas.RingColor
	if ringColor == nil {
		ringColor = color.White
	}

	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	circle(r, center, radius+width/2, false)
	circle(r, center, max(radius-width/2, 0), true)

	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(min(opacity, 1) * 0xff))})
	ring := image.NewRGBA(b)
	r.Draw(ring, b, image.NewUniform(ringColor), image.Point{})
	draw.DrawMask(dst, b, ring, b.Min, mask, image.Point{}, draw.Over)
}

func circle(r *vector.Rasterizer, c transform.Offset, radius float64, reverse bool) {
	const segments = 72
	if radius <= 0 {
		return
	}
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		if reverse {
			a = -a
		}
		x := float32(c.X + radius*math.Cos(a))
		y := float32(c.Y + radius*math.Sin(a))
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}
