package pxedit

import "math"

// Option configures an Editor during creation.
//
// Example:
//
//	ed := pxedit.New(
//	    pxedit.WithJumpSize(32),
//	    pxedit.WithRenderer(gpuRenderer),
//	)
type Option func(*config)

// config holds Editor settings.
type config struct {
	jump     int
	maxCoord int
	renderer TextureRenderer
	strict   bool
}

// defaultConfig returns the default editor settings.
func defaultConfig() config {
	return config{
		jump:     DefaultJumpSize,
		maxCoord: math.MaxInt32,
		renderer: nopRenderer{},
	}
}

// WithJumpSize sets how many pixels a batch grows past a point it must
// include. Values below 1 are ignored.
func WithJumpSize(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.jump = n
		}
	}
}

// WithMaxCoordinate sets the largest absolute tile coordinate accepted by
// drawing operations. Values below 1 are ignored.
func WithMaxCoordinate(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxCoord = n
		}
	}
}

// WithRenderer sets the renderer that mirrors layer and batch buffers as
// GPU textures. A nil renderer keeps the default, which buffers nothing.
//
// For gogpu integration, see integration/gpucanvas.
func WithRenderer(r TextureRenderer) Option {
	return func(c *config) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithStrictChecks makes internal consistency violations panic instead of
// being logged and returned. Enable it in tests and debug builds.
func WithStrictChecks(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}
