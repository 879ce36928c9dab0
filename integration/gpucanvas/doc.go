// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucanvas backs a pxedit.Editor with gogpu textures.
//
// The editor keeps one texture per layer composite and one per live batch.
// Renderer creates, updates and destroys those textures through the
// gpucontext interfaces, so the editor never imports a GPU backend:
//
//	Layer composite (CPU, straight RGBA) -> GPU Texture -> Window
//
// # Usage
//
//	r, err := gpucanvas.New(dc.TextureCreator())
//	if err != nil {
//	    return err
//	}
//	ed := pxedit.New(pxedit.WithRenderer(r))
//	defer ed.Close()
//
//	// Each frame:
//	gpucanvas.RenderTo(dc, ed, 0, 0)
//
// # Thread Safety
//
// Renderer is NOT safe for concurrent use. Drive it from the same event
// loop as the editor.
package gpucanvas
