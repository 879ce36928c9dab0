// Package pxedit provides a sparse, undoable pixel canvas for Go.
//
// # Overview
//
// pxedit is the editing core of a pixel-art editor. Each layer stores its
// pixels in a buffer that grows and shrinks with its content, so pixels may
// sit at any integer coordinate, negative ones included, without a
// fixed-size image behind them. Every edit is recorded as a Batch that
// remembers what it overwrote, which makes undo and redo cost as much as the
// edit itself rather than the whole canvas.
//
// # Quick Start
//
//	import "github.com/gogpu/pxedit"
//
//	ed := pxedit.New()
//	defer ed.Close()
//
//	l, _ := ed.AddLayer("ink", pxedit.NewBoundings(0, 0, 16, 16))
//
//	// One gesture, one batch
//	b, _ := ed.CreateBatchAt(l.ID(), 3, 3)
//	b.FillRect(3, 3, 4, 4, pxedit.MustColor(255, 0, 0, 1))
//	ed.Enqueue(pxedit.KindRect, b)
//
//	ed.FillBucket(l.ID(), 0, 0, pxedit.MustColor(0, 0, 255, 0.5))
//	ed.Undo()
//
//	img := ed.Rasterize()
//
// # Architecture
//
// The library is organized into:
//   - Public API: Editor, Layer, Batch, Command, CommandStack, Color, Boundings
//   - Internal: blend (alpha quantization and merge rules), region (fill tracing)
//   - Integration: gpucanvas (layer textures over gogpu)
//
// # Colors
//
// Colors are straight RGBA. Alpha is logical, from 0 to 1 in steps of 0.1,
// and is stored as a byte via AlphaToByte. Translucent edits landing on
// translucent pixels are blended additively; opaque edits overwrite.
//
// # Coordinate System
//
// Canvas coordinates are integer tiles:
//   - X increases right
//   - Y increases down
//   - Boundings{X, Y, W, H} covers X..X+W-1 and Y..Y+H-1
//
// # Concurrency
//
// Editor, Layer and Batch are not safe for concurrent use. They are meant to
// be driven from a single UI event loop. SetLogger and Logger are safe for
// concurrent use.
package pxedit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
