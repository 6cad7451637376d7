// Package stats renders a diagnostic view of a conversion: a crop of the
// rendered canvas with an optional caption and two plots of the source
// luminance histogram.
package stats

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/wbrown/img2ascii"
)

const (
	// DefaultMargin is the gap around the caption and chart panel.
	DefaultMargin = 30

	// chartOffset is the distance from the caption top to the chart panel.
	chartOffset = 40

	minPlotWidth  = 64
	minPlotHeight = 32
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// Options configure Render.
type Options struct {
	Margin  int
	Caption string
}

// Option is a functional option for Render.
type Option func(*Options)

// WithMargin sets the margin around overlays.
func WithMargin(margin int) Option {
	return func(o *Options) {
		o.Margin = margin
	}
}

// WithCaption sets a caption drawn in a white box at the top left.
func WithCaption(caption string) Option {
	return func(o *Options) {
		o.Caption = caption
	}
}

// Render composes the statistics view. The left half of canvas is copied,
// the caption is drawn over it, and a panel holding a histogram bar chart
// and a circular scatter of the z-scored histogram of resized is pasted
// below the caption. The panel is omitted when the crop is too small to
// hold it.
func Render(resized *img2ascii.LuminanceGrid, canvas *image.Gray, opts ...Option) (*image.RGBA, error) {
	o := Options{Margin: DefaultMargin}
	for _, opt := range opts {
		opt(&o)
	}

	cb := canvas.Bounds()
	width, height := cb.Dx()/2, cb.Dy()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("canvas %dx%d is too small for a statistics view", cb.Dx(), cb.Dy())
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), canvas, cb.Min, draw.Src)

	if o.Caption != "" {
		drawCaption(gg.NewContextForRGBA(out), o.Caption, float64(o.Margin))
	}

	panel := image.Rect(0, 0, width-2*o.Margin, height/4-o.Margin).
		Add(image.Pt(o.Margin, o.Margin+chartOffset))
	if panel.Dx() < 2*minPlotWidth || panel.Dy() < minPlotHeight || !panel.In(out.Bounds()) {
		return out, nil
	}

	chart := drawPanel(panel.Dx(), panel.Dy(), img2ascii.Histogram(resized))
	draw.Draw(out, panel, chart, image.Point{}, draw.Src)
	return out, nil
}

func drawCaption(dc *gg.Context, caption string, margin float64) {
	face := basicfont.Face7x13
	dc.SetFontFace(face)
	w, h := dc.MeasureString(caption)

	dc.SetColor(white)
	dc.DrawRectangle(margin, margin, w, h)
	dc.Fill()
	dc.SetColor(black)
	dc.DrawString(caption, margin, margin+float64(face.Ascent))
}

// drawPanel renders the framed two-plot chart panel.
func drawPanel(width, height int, hist [256]int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(white)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(width)-1, float64(height)-1)
	dc.Stroke()

	half := width / 2
	drawHistogram(dc, titled(dc, image.Rect(0, 0, half, height), "Image Histogram"), hist)
	drawCircularScatter(dc, titled(dc, image.Rect(half, 0, width, height), "Normalized Histogram"), hist)
	return dc.Image()
}

// titled draws a title centered at the top of r and returns the plot area
// below it.
func titled(dc *gg.Context, r image.Rectangle, title string) image.Rectangle {
	cx := float64(r.Min.X) + float64(r.Dx())/2
	dc.DrawStringAnchored(title, cx, float64(r.Min.Y)+2, 0.5, 1)
	top := r.Min.Y + int(math.Ceil(dc.FontHeight())) + 4
	return image.Rect(r.Min.X+4, top, r.Max.X-4, r.Max.Y-4)
}

// drawHistogram draws one bar per luminance bucket, scaled to the tallest.
func drawHistogram(dc *gg.Context, r image.Rectangle, hist [256]int) {
	if r.Empty() {
		return
	}
	peak := 0
	for _, count := range hist {
		peak = max(peak, count)
	}
	if peak == 0 {
		return
	}

	barWidth := float64(r.Dx()) / float64(len(hist))
	bottom := float64(r.Max.Y)
	for i, count := range hist {
		if count == 0 {
			continue
		}
		h := math.Max(float64(count)*float64(r.Dy())/float64(peak), 1)
		dc.DrawRectangle(float64(r.Min.X)+float64(i)*barWidth, bottom-h, math.Max(barWidth, 1), h)
	}
	dc.Fill()
}

// drawCircularScatter plots z-scored bucket counts around a circle: bucket i
// sits at angle 2*pi*i/255 at a radius proportional to its z-score.
func drawCircularScatter(dc *gg.Context, r image.Rectangle, hist [256]int) {
	if r.Empty() {
		return
	}
	z := ZScores(hist)
	theta := floats.Span(make([]float64, len(z)), 0, 2*math.Pi)

	reach := 0.0
	for _, v := range z {
		reach = max(reach, math.Abs(v))
	}
	if reach == 0 {
		reach = 1
	}

	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2
	radius := float64(min(r.Dx(), r.Dy()))/2 - 2

	dc.Push()
	defer dc.Pop()
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	dc.Clip()
	for i, v := range z {
		dc.DrawCircle(cx+v*math.Cos(theta[i])/reach*radius, cy-v*math.Sin(theta[i])/reach*radius, 1)
	}
	dc.Fill()
}

// ZScores normalizes histogram counts to zero mean and unit population
// standard deviation. A histogram with equal counts maps to all zeros.
func ZScores(hist [256]int) []float64 {
	counts := make([]float64, len(hist))
	for i, c := range hist {
		counts[i] = float64(c)
	}
	mean, std := stat.PopMeanStdDev(counts, nil)
	if std == 0 {
		return make([]float64, len(counts))
	}
	floats.AddConst(-mean, counts)
	floats.Scale(1/std, counts)
	return counts
}
