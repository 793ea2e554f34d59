// Package main provides the warp CLI, a thin wrapper over the vision
// engine for transforming image files from the command line.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/warp-ml/warp/vision"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("warp %s\n", version)
		return
	}

	var (
		in, out    string
		resize     string
		crop       string
		pad        string
		rotate     float64
		expand     bool
		hflip      bool
		vflip      bool
		gray       bool
		brightness float64
		contrast   float64
		saturation float64
		hue        float64
		interp     string
		quality    int
		lossless   bool
	)

	flag.StringVar(&in, "in", "", "input image path (jpg/png/webp)")
	flag.StringVar(&out, "out", "", "output image path; format follows the extension")
	flag.StringVar(&resize, "resize", "", "target size: S (short side) or HxW")
	flag.StringVar(&crop, "crop", "", "crop box: TOP,LEFT,HEIGHT,WIDTH")
	flag.StringVar(&pad, "pad", "", "padding: P, LR,TB or L,T,R,B")
	flag.Float64Var(&rotate, "rotate", 0, "rotation angle in degrees, counter-clockwise")
	flag.BoolVar(&expand, "expand", false, "grow the canvas to fit the rotated image")
	flag.BoolVar(&hflip, "hflip", false, "mirror left to right")
	flag.BoolVar(&vflip, "vflip", false, "mirror top to bottom")
	flag.BoolVar(&gray, "gray", false, "convert to grayscale")
	flag.Float64Var(&brightness, "brightness", 1, "brightness factor")
	flag.Float64Var(&contrast, "contrast", 1, "contrast factor")
	flag.Float64Var(&saturation, "saturation", 1, "saturation factor")
	flag.Float64Var(&hue, "hue", 0, "hue shift in [-0.5, 0.5]")
	flag.StringVar(&interp, "interp", "bilinear", "interpolation: nearest|bilinear|bicubic|lanczos")
	flag.IntVar(&quality, "quality", 90, "JPEG/WebP output quality (1-100)")
	flag.BoolVar(&lossless, "lossless", false, "WebP lossless mode")

	flag.Parse()
	if in == "" || out == "" {
		log.Fatalf("usage: %s -in input.jpg -out output.png [-resize 224|224x224] [-rotate 90 -expand] ...", filepath.Base(os.Args[0]))
	}

	src, err := loadImage(in)
	if err != nil {
		log.Fatalf("load %s: %v", in, err)
	}

	result, err := transform(src, pipeline{
		resize:     resize,
		crop:       crop,
		pad:        pad,
		rotate:     rotate,
		expand:     expand,
		hflip:      hflip,
		vflip:      vflip,
		gray:       gray,
		brightness: brightness,
		contrast:   contrast,
		saturation: saturation,
		hue:        hue,
		interp:     vision.Interpolation(interp),
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := saveImage(result, out, quality, lossless); err != nil {
		log.Fatalf("save %s: %v", out, err)
	}
	w, h := result.Size()
	log.Printf("wrote %s (%dx%d)", out, w, h)
}

// pipeline holds the parsed flags in application order.
type pipeline struct {
	resize     string
	crop       string
	pad        string
	rotate     float64
	expand     bool
	hflip      bool
	vflip      bool
	gray       bool
	brightness float64
	contrast   float64
	saturation float64
	hue        float64
	interp     vision.Interpolation
}

// transform applies the requested operations in a fixed order: crop, pad,
// resize, flips, rotation, color adjustments, grayscale.
func transform(src image.Image, p pipeline) (vision.Image, error) {
	img, err := vision.Classify(src)
	if err != nil {
		return nil, err
	}

	if p.crop != "" {
		box, err := parseInts(p.crop, 4)
		if err != nil {
			return nil, fmt.Errorf("crop: %w", err)
		}
		img, err = vision.Crop(img, box[0], box[1], box[2], box[3])
		if err != nil {
			return nil, err
		}
	}
	if p.pad != "" {
		padding, err := parseIntList(p.pad)
		if err != nil {
			return nil, fmt.Errorf("pad: %w", err)
		}
		img, err = vision.Pad(img, padding, vision.PadOptions{})
		if err != nil {
			return nil, err
		}
	}
	if p.resize != "" {
		size, err := parseSize(p.resize)
		if err != nil {
			return nil, fmt.Errorf("resize: %w", err)
		}
		img, err = vision.Resize(img, size, p.interp)
		if err != nil {
			return nil, err
		}
	}
	if p.hflip {
		if img, err = vision.HFlip(img); err != nil {
			return nil, err
		}
	}
	if p.vflip {
		if img, err = vision.VFlip(img); err != nil {
			return nil, err
		}
	}
	if p.rotate != 0 {
		img, err = vision.Rotate(img, p.rotate, vision.RotateOptions{
			Interpolation: p.interp,
			Expand:        p.expand,
		})
		if err != nil {
			return nil, err
		}
	}
	if p.brightness != 1 {
		if img, err = vision.AdjustBrightness(img, p.brightness); err != nil {
			return nil, err
		}
	}
	if p.contrast != 1 {
		if img, err = vision.AdjustContrast(img, p.contrast); err != nil {
			return nil, err
		}
	}
	if p.saturation != 1 {
		if img, err = vision.AdjustSaturation(img, p.saturation); err != nil {
			return nil, err
		}
	}
	if p.hue != 0 {
		if img, err = vision.AdjustHue(img, p.hue); err != nil {
			return nil, err
		}
	}
	if p.gray {
		if img, err = vision.ToGrayscale(img, 3); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// loadImage decodes jpg/png via the registered decoders and falls back to
// webp for files the standard decoders reject.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err == nil {
		return img, nil
	}
	if _, serr := f.Seek(0, 0); serr != nil {
		return nil, err
	}
	if img, werr := webp.Decode(f); werr == nil {
		return img, nil
	}
	return nil, err
}

func saveImage(img vision.Image, path string, quality int, lossless bool) error {
	g, ok := img.(*vision.Grid)
	if !ok {
		return fmt.Errorf("only grid images can be written to files, got %s", img.Kind())
	}
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return webp.Encode(f, g.Img, &webp.Options{Lossless: lossless, Quality: float32(quality)})
	case "png":
		return imaging.Save(g.Img, path)
	default: // jpg/jpeg
		return imaging.Save(g.Img, path, imaging.JPEGQuality(quality))
	}
}

func parseInts(s string, n int) ([]int, error) {
	vals, err := parseIntList(s)
	if err != nil {
		return nil, err
	}
	if len(vals) != n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(vals))
	}
	return vals, nil
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	vals := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad value %q", p)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// parseSize accepts "224" (short side) or "224x320" (height by width).
func parseSize(s string) ([]int, error) {
	if h, w, ok := strings.Cut(s, "x"); ok {
		hv, err := strconv.Atoi(h)
		if err != nil {
			return nil, fmt.Errorf("bad height %q", h)
		}
		wv, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("bad width %q", w)
		}
		return []int{hv, wv}, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("bad size %q", s)
	}
	return []int{v}, nil
}
