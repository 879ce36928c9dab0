// Command pxdemo demonstrates the pxedit canvas engine.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/pxedit"
)

func main() {
	var (
		size    = flag.Int("size", 32, "canvas size in pixels")
		scale   = flag.Int("scale", 8, "output upscale factor")
		output  = flag.String("output", "pxdemo.png", "output file")
		verbose = flag.Bool("v", false, "log engine activity")
	)
	flag.Parse()

	if *verbose {
		pxedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ed := pxedit.New()
	defer ed.Close()

	if err := buildScene(ed, *size); err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	img := ed.RasterizeScaled(*scale)
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %d commands)\n",
		*output, img.Rect.Dx(), img.Rect.Dy(), ed.Stack().Len())
}

func buildScene(ed *pxedit.Editor, size int) error {
	bg, err := ed.AddLayer("background", pxedit.NewBoundings(0, 0, size, size))
	if err != nil {
		return err
	}
	if err := ed.FillBucket(bg.ID(), 0, 0, pxedit.MustColor(30, 30, 60, 1)); err != nil {
		return err
	}

	sprite, err := ed.AddLayer("sprite", pxedit.Boundings{})
	if err != nil {
		return err
	}
	if err := drawRect(ed, sprite.ID(), size/4, size/4, size/2, pxedit.MustColor(255, 0, 0, 0.5)); err != nil {
		return err
	}
	if err := drawRect(ed, sprite.ID(), size/2-2, size/2-2, size/2, pxedit.MustColor(0, 0, 255, 0.5)); err != nil {
		return err
	}

	// A mistake, undone and replaced by a gradient strip.
	if err := drawRect(ed, sprite.ID(), 0, 0, size, pxedit.MustColor(255, 255, 255, 1)); err != nil {
		return err
	}
	ed.Undo()
	if err := ed.InsertImage(sprite.ID(), gradient(size, 2), 0, size-2); err != nil {
		return err
	}

	// Mirror the sprite and flatten it into the background.
	if err := ed.FlipLayer(sprite.ID(), pxedit.FlipHorizontal); err != nil {
		return err
	}
	if err := ed.MergeDown(sprite.ID()); err != nil {
		return err
	}

	// Recolor the background everywhere it still shows.
	return ed.ReplaceColor(bg.ID(), 0, 0, pxedit.MustColor(20, 60, 40, 1))
}

func drawRect(ed *pxedit.Editor, id pxedit.LayerID, x, y, n int, c pxedit.Color) error {
	ed.BeginGesture(pxedit.StateRect)
	b, err := ed.CreateBatchAt(id, x, y)
	if err != nil {
		ed.EndGesture(pxedit.StateRect)
		return err
	}
	err = b.FillRect(x, y, n, n, c)
	ed.EndGesture(pxedit.StateRect)
	if err != nil {
		_ = b.Kill()
		return err
	}
	return ed.Enqueue(pxedit.KindRect, b)
}

func gradient(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / max(w-1, 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: 255 - v, B: 128, A: 255})
		}
	}
	return img
}
