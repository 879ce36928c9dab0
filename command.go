package pxedit

// Kind identifies the operation a command records.
type Kind uint8

const (
	// Pixel-batch operations
	KindDraw        Kind = iota // Free-hand drawing
	KindErase                   // Eraser gesture
	KindFill                    // Bucket fill of a connected region
	KindFloodFill               // Replace every matching pixel of a layer
	KindInsertImage             // Imported image
	KindStroke                  // Line stroke
	KindRect                    // Rectangle
	KindArc                     // Arc or circle
	KindPaste                   // Pasted selection

	// Layer-structural operations
	KindLayerAdd        // Layer added
	KindLayerRemove     // Layer removed
	KindLayerMove       // Layer reordered
	KindLayerRename     // Layer renamed
	KindLayerLock       // Layer lock toggled
	KindLayerVisibility // Layer visibility toggled
	KindLayerTranslate  // Layer content moved
	KindLayerMerge      // Layer merged into the one below
	KindLayerFlip       // Layer content mirrored
	KindLayerRotate     // Layer content rotated
)

// kindNames maps Kind values to their string representation.
var kindNames = [...]string{
	KindDraw:            "Draw",
	KindErase:           "Erase",
	KindFill:            "Fill",
	KindFloodFill:       "FloodFill",
	KindInsertImage:     "InsertImage",
	KindStroke:          "Stroke",
	KindRect:            "Rect",
	KindArc:             "Arc",
	KindPaste:           "Paste",
	KindLayerAdd:        "LayerAdd",
	KindLayerRemove:     "LayerRemove",
	KindLayerMove:       "LayerMove",
	KindLayerRename:     "LayerRename",
	KindLayerLock:       "LayerLock",
	KindLayerVisibility: "LayerVisibility",
	KindLayerTranslate:  "LayerTranslate",
	KindLayerMerge:      "LayerMerge",
	KindLayerFlip:       "LayerFlip",
	KindLayerRotate:     "LayerRotate",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsLayerOp reports whether the kind mutates the layer list or a layer's
// metadata rather than its pixels.
func (k Kind) IsLayerOp() bool {
	return k >= KindLayerAdd && int(k) < len(kindNames)
}

// IsBatchOp reports whether the kind is reversed through a batch's
// reverse buffer.
func (k Kind) IsBatchOp() bool {
	return k <= KindPaste
}

// Command is one entry of the command stack.
//
// The set of implementations is closed: BatchCommand for pixel edits and
// one Layer*Command type per structural operation. Each knows how to apply
// and revert itself, and what to free when redo truncation discards it.
type Command interface {
	// Kind returns the recorded operation.
	Kind() Kind

	apply(ed *Editor, forward bool)
	release(ed *Editor)
}

// BatchCommand merges a batch into, or reverts it out of, its layer.
type BatchCommand struct {
	kind  Kind
	batch *Batch
}

// Kind implements Command.
func (c *BatchCommand) Kind() Kind { return c.kind }

// Batch returns the recorded batch.
func (c *BatchCommand) Batch() *Batch { return c.batch }

func (c *BatchCommand) apply(ed *Editor, forward bool) {
	ed.applyBatch(c.batch, forward)
}

func (c *BatchCommand) release(ed *Editor) {
	_ = ed.killBatch(c.batch)
}

// LayerAddCommand inserts a layer into the render order.
type LayerAddCommand struct {
	layer LayerID
	index int
}

// Kind implements Command.
func (c *LayerAddCommand) Kind() Kind { return KindLayerAdd }

// Layer returns the added layer's ID.
func (c *LayerAddCommand) Layer() LayerID { return c.layer }

func (c *LayerAddCommand) apply(ed *Editor, forward bool) {
	if forward {
		ed.insertOrder(c.layer, c.index)
	} else {
		ed.removeOrder(c.layer)
	}
}

// release drops the layer for good: a discarded add is never redone.
func (c *LayerAddCommand) release(ed *Editor) {
	ed.dropLayer(c.layer)
}

// LayerRemoveCommand takes a layer out of the render order. The layer stays
// in the arena so undo can restore it.
type LayerRemoveCommand struct {
	layer LayerID
	index int
}

// Kind implements Command.
func (c *LayerRemoveCommand) Kind() Kind { return KindLayerRemove }

// Layer returns the removed layer's ID.
func (c *LayerRemoveCommand) Layer() LayerID { return c.layer }

func (c *LayerRemoveCommand) apply(ed *Editor, forward bool) {
	if forward {
		ed.removeOrder(c.layer)
	} else {
		ed.insertOrder(c.layer, c.index)
	}
}

func (c *LayerRemoveCommand) release(*Editor) {}

// LayerMoveCommand moves a layer from one render-order index to another.
type LayerMoveCommand struct {
	layer    LayerID
	from, to int
}

// Kind implements Command.
func (c *LayerMoveCommand) Kind() Kind { return KindLayerMove }

func (c *LayerMoveCommand) apply(ed *Editor, forward bool) {
	ed.removeOrder(c.layer)
	if forward {
		ed.insertOrder(c.layer, c.to)
	} else {
		ed.insertOrder(c.layer, c.from)
	}
}

func (c *LayerMoveCommand) release(*Editor) {}

// LayerRenameCommand changes a layer's name.
type LayerRenameCommand struct {
	layer    LayerID
	from, to string
}

// Kind implements Command.
func (c *LayerRenameCommand) Kind() Kind { return KindLayerRename }

func (c *LayerRenameCommand) apply(ed *Editor, forward bool) {
	if l := ed.arena[c.layer]; l != nil {
		l.name = pick(forward, c.to, c.from)
	}
}

func (c *LayerRenameCommand) release(*Editor) {}

// LayerLockCommand changes a layer's lock flag.
type LayerLockCommand struct {
	layer  LayerID
	locked bool
}

// Kind implements Command.
func (c *LayerLockCommand) Kind() Kind { return KindLayerLock }

func (c *LayerLockCommand) apply(ed *Editor, forward bool) {
	if l := ed.arena[c.layer]; l != nil {
		l.locked = pick(forward, c.locked, !c.locked)
	}
}

func (c *LayerLockCommand) release(*Editor) {}

// LayerVisibilityCommand changes a layer's visibility.
type LayerVisibilityCommand struct {
	layer   LayerID
	visible bool
}

// Kind implements Command.
func (c *LayerVisibilityCommand) Kind() Kind { return KindLayerVisibility }

func (c *LayerVisibilityCommand) apply(ed *Editor, forward bool) {
	if l := ed.arena[c.layer]; l != nil {
		l.visible = pick(forward, c.visible, !c.visible)
	}
}

func (c *LayerVisibilityCommand) release(*Editor) {}

// LayerTranslateCommand shifts a layer's content by (dx, dy).
type LayerTranslateCommand struct {
	layer  LayerID
	dx, dy int
}

// Kind implements Command.
func (c *LayerTranslateCommand) Kind() Kind { return KindLayerTranslate }

func (c *LayerTranslateCommand) apply(ed *Editor, forward bool) {
	l := ed.arena[c.layer]
	if l == nil {
		return
	}
	if forward {
		l.translate(c.dx, c.dy)
	} else {
		l.translate(-c.dx, -c.dy)
	}
	ed.refreshLayer(l)
}

func (c *LayerTranslateCommand) release(*Editor) {}

func pick[T any](forward bool, fwd, rev T) T {
	if forward {
		return fwd
	}
	return rev
}

// LayerMergeCommand merges a layer into the layer below it and takes the
// upper layer out of the render order. The merged pixels form a batch of the
// lower layer, so undo restores both layers exactly.
type LayerMergeCommand struct {
	upper, lower LayerID
	index        int
	batch        *Batch
}

// Kind implements Command.
func (c *LayerMergeCommand) Kind() Kind { return KindLayerMerge }

// Layer returns the merged (upper) layer's ID.
func (c *LayerMergeCommand) Layer() LayerID { return c.upper }

// Into returns the ID of the layer that received the pixels.
func (c *LayerMergeCommand) Into() LayerID { return c.lower }

// Batch returns the batch holding the merged pixels, or nil if the upper
// layer was empty.
func (c *LayerMergeCommand) Batch() *Batch { return c.batch }

func (c *LayerMergeCommand) apply(ed *Editor, forward bool) {
	if forward {
		if c.batch != nil {
			ed.applyBatch(c.batch, true)
		}
		ed.removeOrder(c.upper)
		return
	}
	ed.insertOrder(c.upper, c.index)
	if c.batch != nil {
		ed.applyBatch(c.batch, false)
	}
}

func (c *LayerMergeCommand) release(ed *Editor) {
	if c.batch != nil {
		_ = ed.killBatch(c.batch)
	}
}

// LayerTransformCommand flips or rotates a layer's content. The recorded
// matrix is inverted on undo.
type LayerTransformCommand struct {
	kind  Kind
	layer LayerID
	m     tileMatrix
}

// Kind implements Command.
func (c *LayerTransformCommand) Kind() Kind { return c.kind }

// Layer returns the transformed layer's ID.
func (c *LayerTransformCommand) Layer() LayerID { return c.layer }

func (c *LayerTransformCommand) apply(ed *Editor, forward bool) {
	l := ed.arena[c.layer]
	if l == nil {
		return
	}
	m := c.m
	if !forward {
		m = m.Invert()
	}
	l.transform(m)
	ed.refreshLayer(l)
	for _, b := range l.batches {
		ed.refreshBatch(b)
	}
}

func (c *LayerTransformCommand) release(*Editor) {}
