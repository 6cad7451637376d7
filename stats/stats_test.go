package stats

import (
	"image"
	"math"
	"testing"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

func gradientGrid(t *testing.T, width, height int) *img2ascii.LuminanceGrid {
	t.Helper()
	img := imageutil.CreateGradientImage(width, height)
	grid, err := img2ascii.NewLuminanceGrid(width, height, img.Samples())
	if err != nil {
		t.Fatal(err)
	}
	return grid
}

func blankCanvas(width, height int) *image.Gray {
	return imageutil.CreateSolidImage(width, height, 255).Gray
}

func countDark(img *image.RGBA, r image.Rectangle) int {
	dark := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	return dark
}

func TestRenderCropsLeftHalf(t *testing.T) {
	out, err := Render(gradientGrid(t, 64, 32), blankCanvas(600, 800))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if out.Bounds().Dx() != 300 || out.Bounds().Dy() != 800 {
		t.Errorf("Expected 300x800, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestRenderDrawsPanel(t *testing.T) {
	out, err := Render(gradientGrid(t, 64, 32), blankCanvas(600, 800))
	if err != nil {
		t.Fatal(err)
	}

	panel := image.Rect(DefaultMargin, DefaultMargin+chartOffset, 300-DefaultMargin, 800/4+chartOffset)
	if countDark(out, panel) == 0 {
		t.Error("Chart panel should contain plotted pixels")
	}
	// Nothing is drawn below the panel on a blank canvas.
	below := image.Rect(0, panel.Max.Y+1, 300, 800)
	if n := countDark(out, below); n != 0 {
		t.Errorf("Expected blank area below the panel, found %d dark pixels", n)
	}
}

func TestRenderPlotsBothCharts(t *testing.T) {
	out, err := Render(gradientGrid(t, 64, 32), blankCanvas(600, 800))
	if err != nil {
		t.Fatal(err)
	}

	// Plot areas sit below the titles, inside the panel frame.
	histogram := image.Rect(40, 100, 140, 230)
	scatter := image.Rect(160, 100, 260, 230)
	if countDark(out, histogram) == 0 {
		t.Error("Histogram plot should contain bars")
	}
	if countDark(out, scatter) == 0 {
		t.Error("Scatter plot should contain points")
	}
}

func TestRenderCaption(t *testing.T) {
	grid := gradientGrid(t, 8, 8)
	canvas := imageutil.CreateSolidImage(200, 40, 0).Gray // too short for the panel

	plain, err := Render(grid, canvas)
	if err != nil {
		t.Fatal(err)
	}
	captioned, err := Render(grid, canvas, WithCaption("hello"), WithMargin(4))
	if err != nil {
		t.Fatal(err)
	}

	box := image.Rect(4, 4, 4+5*7, 4+13)
	if countDark(plain, box) != box.Dx()*box.Dy() {
		t.Error("Uncaptioned crop should keep the black canvas")
	}
	if countDark(captioned, box) == box.Dx()*box.Dy() {
		t.Error("Caption box should be painted white behind the text")
	}
}

func TestRenderRejectsTinyCanvas(t *testing.T) {
	if _, err := Render(gradientGrid(t, 4, 4), blankCanvas(1, 10)); err == nil {
		t.Error("A one pixel wide canvas cannot be cropped in half")
	}
}

func TestZScores(t *testing.T) {
	var hist [256]int
	hist[0] = 10
	hist[255] = 10

	z := ZScores(hist)
	if len(z) != 256 {
		t.Fatalf("Expected 256 scores, got %d", len(z))
	}
	var sum, sumSq float64
	for _, v := range z {
		sum += v
		sumSq += v * v
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("Scores should have zero mean, sum=%g", sum)
	}
	if math.Abs(sumSq/256-1) > 1e-9 {
		t.Errorf("Scores should have unit variance, got %g", sumSq/256)
	}
	if z[0] <= 0 || z[1] >= 0 {
		t.Errorf("Populated buckets should score above empty ones: %g, %g", z[0], z[1])
	}
}

func TestZScoresFlatHistogram(t *testing.T) {
	var hist [256]int
	for i := range hist {
		hist[i] = 3
	}
	for i, v := range ZScores(hist) {
		if v != 0 {
			t.Fatalf("Score %d should be 0 for equal counts, got %g", i, v)
		}
	}
}
