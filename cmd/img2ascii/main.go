package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/stats"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	aspect   float64
	resample string
	fontPath string
	fontSize float64
	stats    bool
	caption  string
	print    bool
	verbose  bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("img2ascii", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64VarP(&opts.aspect, "aspect", "a", img2ascii.DefaultAspectRatio,
		"Aspect ratio factor applied to the source width")
	fs.StringVarP(&opts.resample, "resample", "r", "area",
		"Resampling filter: area, linear, nearest or lanczos")
	fs.StringVar(&opts.fontPath, "font", "",
		"Path to a monospace TTF font (default: bundled Go Mono)")
	fs.Float64Var(&opts.fontSize, "font-size", img2ascii.DefaultFontSize,
		"Font size in points at 72 DPI")
	fs.BoolVarP(&opts.stats, "stats", "s", false,
		"Also write a statistics view of the conversion")
	fs.StringVar(&opts.caption, "caption", "",
		"Caption drawn on the statistics view")
	fs.BoolVarP(&opts.print, "print", "p", false,
		"Print the glyph text to stdout")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Log pipeline diagnostics to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: img2ascii [options] <image-path>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: %v, got %d\n", img2ascii.ErrInvalidArgumentCount, fs.NArg())
		fs.Usage()
		return exitUsage
	}

	if err := convert(fs.Arg(0), opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func convert(path string, opts options, stdout, stderr io.Writer) error {
	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "img2ascii: ", 0)
	}

	interp, err := imageutil.ParseInterpolation(opts.resample)
	if err != nil {
		return err
	}

	font, err := loadFont(opts.fontPath, opts.fontSize)
	if err != nil {
		return err
	}

	conv, err := img2ascii.NewConverter(
		img2ascii.WithAspectRatio(opts.aspect),
		img2ascii.WithResample(interp),
		img2ascii.WithFont(font),
		img2ascii.WithLogger(logger),
	)
	if err != nil {
		font.Close()
		return err
	}
	defer conv.Close()

	result, err := conv.ConvertFile(path)
	if err != nil {
		return err
	}

	paths := img2ascii.OutputPathsFor(path)
	if err := result.WriteArtifacts(paths); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "ASCII art saved to %s and %s\n", paths.Text, paths.Image)

	if opts.print {
		fmt.Fprintln(stdout, result.Text)
	}

	if opts.stats {
		view, err := stats.Render(result.Resized, result.Canvas, stats.WithCaption(opts.caption))
		if err != nil {
			return err
		}
		if err := imageutil.SaveImage(view, paths.Stats); err != nil {
			return fmt.Errorf("failed to write statistics view: %w", err)
		}
		fmt.Fprintf(stdout, "Statistics view saved to %s\n", paths.Stats)
	}
	return nil
}

func loadFont(path string, size float64) (*img2ascii.Font, error) {
	if path == "" {
		return img2ascii.BundledFont(size)
	}
	return img2ascii.LoadFontFile(path, size)
}
