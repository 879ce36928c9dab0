package pxedit

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FlipAxis selects the mirror line of FlipLayer.
type FlipAxis uint8

const (
	FlipHorizontal FlipAxis = iota // Mirror left to right
	FlipVertical                   // Mirror top to bottom
)

// ToolState is a set of in-progress tool gestures.
type ToolState uint16

const (
	StateDrawing   ToolState = 1 << iota // Free-hand drawing
	StateErasing                         // Eraser drag
	StateStroke                          // Line stroke
	StateRect                            // Rectangle drag
	StateArc                             // Arc or circle drag
	StateMoving                          // Layer move preview
	StateSelecting                       // Selection drag
)

// Editor owns the layers of one document, the command stack shared by all
// of them, and the texture pool that mirrors their buffers.
//
// Layers live in an arena keyed by LayerID; the render order is a separate
// list of IDs, so a removed layer can be restored by undo.
//
// Editor is NOT safe for concurrent use. It is meant to be driven from a
// single UI event loop.
type Editor struct {
	cfg      config
	stack    CommandStack
	textures *texturePool

	arena map[LayerID]*Layer
	order []LayerID

	states ToolState
	bounds Boundings

	nextLayerID LayerID
	nextBatchID uint64
}

// New creates an empty editor.
func New(opts ...Option) *Editor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Editor{
		cfg:      cfg,
		stack:    newCommandStack(),
		textures: newTexturePool(cfg.renderer),
		arena:    make(map[LayerID]*Layer),
	}
}

// Stack returns the editor's command stack.
func (ed *Editor) Stack() *CommandStack { return &ed.stack }

// Bounds returns the union of the boundings of all visible layers.
func (ed *Editor) Bounds() Boundings { return ed.bounds }

// LiveTextures returns the number of textures currently buffered.
func (ed *Editor) LiveTextures() int { return ed.textures.size() }

// Layers returns the document's layers in render order, bottom first.
func (ed *Editor) Layers() []*Layer {
	out := make([]*Layer, 0, len(ed.order))
	for _, id := range ed.order {
		out = append(out, ed.arena[id])
	}
	return out
}

// Layer returns the document layer with the given ID, or nil if it does
// not exist or is currently removed.
func (ed *Editor) Layer(id LayerID) *Layer {
	if ed.orderIndex(id) < 0 {
		return nil
	}
	return ed.arena[id]
}

// BeginGesture marks a tool gesture as in progress.
func (ed *Editor) BeginGesture(s ToolState) { ed.states |= s }

// EndGesture marks a tool gesture as finished.
func (ed *Editor) EndGesture(s ToolState) { ed.states &^= s }

// IsInActiveState reports whether any tool gesture is in progress.
func (ed *Editor) IsInActiveState() bool { return ed.states != 0 }

// CreateBatchAt creates a drawing batch for a layer, anchored at (x, y).
func (ed *Editor) CreateBatchAt(id LayerID, x, y int) (*Batch, error) {
	l, err := ed.editableLayer(id)
	if err != nil {
		return nil, err
	}
	if err := ed.checkCoordinate(x, y); err != nil {
		return nil, err
	}
	return ed.newBatch(l, newPixelBuffer(Boundings{X: x, Y: y}, true)), nil
}

// CreateEraserBatchAt creates a hard-erase batch for a layer, anchored at (x, y).
func (ed *Editor) CreateEraserBatchAt(id LayerID, x, y int) (*Batch, error) {
	b, err := ed.CreateBatchAt(id, x, y)
	if err != nil {
		return nil, err
	}
	b.eraser = true
	return b, nil
}

// CreateMoverBatch creates a detached preview of a layer's composite for a
// move gesture. It never joins the layer's batch list and is never
// enqueued; kill it when the gesture ends.
func (ed *Editor) CreateMoverBatch(id LayerID) (*Batch, error) {
	l, err := ed.editableLayer(id)
	if err != nil {
		return nil, err
	}
	ed.nextBatchID++
	return &Batch{
		id:    ed.nextBatchID,
		layer: l.id,
		ed:    ed,
		buf:   l.composite.clone(),
		mover: true,
	}, nil
}

// Enqueue finalizes a batch and records it as a command of the given kind,
// discarding any redoable commands first, then applies it.
//
// An empty batch is killed instead and ErrEmptyBatch is returned.
func (ed *Editor) Enqueue(kind Kind, b *Batch) error {
	if !kind.IsBatchOp() {
		return fmt.Errorf("%w: %v is not a pixel operation", ErrInvalidKind, kind)
	}
	switch {
	case b == nil || b.killed:
		return ErrBatchDead
	case b.mover:
		return fmt.Errorf("%w: mover batch %d", ErrInvalidKind, b.id)
	case b.queued:
		return fmt.Errorf("%w: %d", ErrBatchQueued, b.id)
	}
	if ed.IsInActiveState() {
		return ErrGestureActive
	}
	if b.IsEmpty() {
		_ = ed.killBatch(b)
		return ErrEmptyBatch
	}
	if err := b.Finalize(); err != nil {
		return err
	}
	b.queued = true
	ed.push(&BatchCommand{kind: kind, batch: b})
	return nil
}

// Undo reverts the command at the cursor. It is a no-op while a gesture is
// in progress or when nothing is applied. Reports whether a command was reverted.
func (ed *Editor) Undo() bool {
	if !ed.stack.CanUndo() || ed.IsInActiveState() {
		return false
	}
	cmd := ed.stack.commands[ed.stack.sindex]
	cmd.apply(ed, false)
	ed.stack.sindex--
	ed.updateBounds()
	Logger().Debug("pxedit: undo", slog.String("kind", cmd.Kind().String()), slog.Int("cursor", ed.stack.sindex))
	return true
}

// Redo applies the command above the cursor. It is a no-op while a gesture
// is in progress or when the cursor is at the tail. Reports whether a
// command was applied.
func (ed *Editor) Redo() bool {
	if !ed.stack.CanRedo() || ed.IsInActiveState() {
		return false
	}
	ed.stack.sindex++
	cmd := ed.stack.commands[ed.stack.sindex]
	cmd.apply(ed, true)
	ed.updateBounds()
	Logger().Debug("pxedit: redo", slog.String("kind", cmd.Kind().String()), slog.Int("cursor", ed.stack.sindex))
	return true
}

// AddLayer creates a layer on top of the render order. area is the layer's
// minimum working area; pass the zero value for none.
func (ed *Editor) AddLayer(name string, area Boundings) (*Layer, error) {
	if ed.IsInActiveState() {
		return nil, ErrGestureActive
	}
	ed.nextLayerID++
	area = NewBoundings(area.X, area.Y, area.W, area.H)
	l := newLayer(ed.nextLayerID, normalizeName(name), area, ed.textures)
	ed.arena[l.id] = l
	ed.push(&LayerAddCommand{layer: l.id, index: len(ed.order)})
	return l, nil
}

// RemoveLayer takes a layer out of the document.
func (ed *Editor) RemoveLayer(id LayerID) error {
	i, err := ed.structural(id)
	if err != nil {
		return err
	}
	ed.push(&LayerRemoveCommand{layer: id, index: i})
	return nil
}

// MoveLayer moves a layer to render-order index to, clamped to the valid range.
func (ed *Editor) MoveLayer(id LayerID, to int) error {
	from, err := ed.structural(id)
	if err != nil {
		return err
	}
	to = max(0, min(to, len(ed.order)-1))
	if to == from {
		return nil
	}
	ed.push(&LayerMoveCommand{layer: id, from: from, to: to})
	return nil
}

// RenameLayer changes a layer's name. Names are NFC-normalized and trimmed.
func (ed *Editor) RenameLayer(id LayerID, name string) error {
	if _, err := ed.structural(id); err != nil {
		return err
	}
	l := ed.arena[id]
	name = normalizeName(name)
	if name == l.name {
		return nil
	}
	ed.push(&LayerRenameCommand{layer: id, from: l.name, to: name})
	return nil
}

// SetLayerLocked locks or unlocks a layer.
func (ed *Editor) SetLayerLocked(id LayerID, locked bool) error {
	if _, err := ed.structural(id); err != nil {
		return err
	}
	if ed.arena[id].locked == locked {
		return nil
	}
	ed.push(&LayerLockCommand{layer: id, locked: locked})
	return nil
}

// SetLayerVisible shows or hides a layer.
func (ed *Editor) SetLayerVisible(id LayerID, visible bool) error {
	if _, err := ed.structural(id); err != nil {
		return err
	}
	if ed.arena[id].visible == visible {
		return nil
	}
	ed.push(&LayerVisibilityCommand{layer: id, visible: visible})
	return nil
}

// TranslateLayer moves a layer's content by (dx, dy).
func (ed *Editor) TranslateLayer(id LayerID, dx, dy int) error {
	if _, err := ed.editableLayer(id); err != nil {
		return err
	}
	if _, err := ed.structural(id); err != nil {
		return err
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	ed.push(&LayerTranslateCommand{layer: id, dx: dx, dy: dy})
	return nil
}

// MergeDown merges a layer into the layer directly below it in render
// order and removes it from the document. Pixels combine as a batch of the
// lower layer would. The lower layer must not be locked.
func (ed *Editor) MergeDown(id LayerID) error {
	i, err := ed.structural(id)
	if err != nil {
		return err
	}
	if i == 0 {
		return fmt.Errorf("%w: %d", ErrNoLayerBelow, id)
	}
	lower, err := ed.editableLayer(ed.order[i-1])
	if err != nil {
		return err
	}
	ed.push(&LayerMergeCommand{
		upper: id,
		lower: lower.id,
		index: i,
		batch: ed.mergeBatch(lower, ed.arena[id]),
	})
	return nil
}

// FlipLayer mirrors a layer's content across the center line of its
// boundings. An empty layer is left alone.
func (ed *Editor) FlipLayer(id LayerID, axis FlipAxis) error {
	if axis != FlipHorizontal && axis != FlipVertical {
		return fmt.Errorf("pxedit: unknown flip axis %d", axis)
	}
	l, err := ed.transformable(id)
	if err != nil || l == nil {
		return err
	}
	ed.push(&LayerTransformCommand{kind: KindLayerFlip, layer: id, m: flipTiles(l.composite.bounds, axis)})
	return nil
}

// RotateLayer turns a layer's content by the given number of clockwise
// quarter turns; negative values turn counter-clockwise. The rotated
// content keeps the top-left corner of the layer's boundings.
func (ed *Editor) RotateLayer(id LayerID, turns int) error {
	l, err := ed.transformable(id)
	if err != nil || l == nil {
		return err
	}
	turns = (turns%4 + 4) % 4
	if turns == 0 {
		return nil
	}
	m := identityTiles()
	b := l.composite.bounds
	for range turns {
		r := rotateTiles(b)
		m = r.Multiply(m)
		b = r.Bounds(b)
	}
	if err := ed.checkCoordinate(b.X+b.W-1, b.Y+b.H-1); err != nil {
		return err
	}
	ed.push(&LayerTransformCommand{kind: KindLayerRotate, layer: id, m: m})
	return nil
}

// Close releases every texture the editor has buffered.
func (ed *Editor) Close() {
	ed.textures.releaseAll()
}

// push discards the redoable future, appends c and applies it.
func (ed *Editor) push(c Command) {
	ed.refreshStack()
	ed.stack.push(c)
	ed.Redo()
}

// refreshStack deletes every command above the cursor, newest first.
func (ed *Editor) refreshStack() {
	dropped := ed.stack.truncate()
	for i := len(dropped) - 1; i >= 0; i-- {
		ed.dequeue(dropped[i])
	}
}

// dequeue frees what a discarded command owns.
func (ed *Editor) dequeue(c Command) {
	Logger().Debug("pxedit: dequeue", slog.String("kind", c.Kind().String()))
	c.release(ed)
}

// newBatch registers a batch over buf with layer l.
func (ed *Editor) newBatch(l *Layer, buf *pixelBuffer) *Batch {
	ed.nextBatchID++
	b := &Batch{id: ed.nextBatchID, layer: l.id, ed: ed, buf: buf}
	l.batches = append(l.batches, b)
	return b
}

// applyBatch merges b into its layer (forward) or reverts it.
func (ed *Editor) applyBatch(b *Batch, forward bool) {
	l := ed.arena[b.layer]
	if l == nil {
		return
	}
	if forward {
		b.applied = true
		l.updateBoundings()
		l.injectMatrix(b, true)
	} else {
		l.injectMatrix(b, false)
		b.applied = false
		l.updateBoundings()
	}
	ed.refreshLayer(l)
}

// mergeBatch copies upper's composite into a new queued batch of lower,
// capturing lower's pixels underneath. It returns nil if upper is empty.
func (ed *Editor) mergeBatch(lower, upper *Layer) *Batch {
	src := upper.composite
	b := ed.newBatch(lower, newPixelBuffer(src.bounds, true))
	r := src.bounds
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p := src.pixel(x, y)
			if p[3] == 0 {
				continue
			}
			b.capture(x, y)
			copy(b.buf.pixel(x, y), p)
		}
	}
	if b.IsEmpty() {
		_ = ed.killBatch(b)
		return nil
	}
	b.ResizeByMatrixData()
	b.queued = true
	return b
}

// killBatch removes b from its layer and releases its texture.
func (ed *Editor) killBatch(b *Batch) error {
	if b.killed {
		return ErrBatchDead
	}
	b.killed = true
	ed.textures.release(b.textureKey())

	l := ed.arena[b.layer]
	if l != nil && l.removeBatch(b) {
		if b.applied {
			b.applied = false
			l.updateBoundings()
			ed.refreshLayer(l)
		}
		return nil
	}
	if b.mover {
		return nil
	}
	err := fmt.Errorf("%w: batch %d, layer %d", ErrBatchNotFound, b.id, b.layer)
	if ed.cfg.strict {
		panic(err)
	}
	Logger().Warn("pxedit: killed batch not owned by any layer",
		slog.Uint64("batch", b.id), slog.Uint64("layer", uint64(b.layer)))
	return err
}

// dropLayer deletes a layer from the arena, killing its batches and
// releasing its textures.
func (ed *Editor) dropLayer(id LayerID) {
	l := ed.arena[id]
	if l == nil {
		return
	}
	for _, b := range l.batches {
		b.killed = true
		ed.textures.release(b.textureKey())
	}
	l.batches = nil
	ed.textures.release(l.textureKey())
	ed.removeOrder(id)
	delete(ed.arena, id)
}

// refreshLayer pushes a layer's composite to its texture. Renderer
// failures are logged; the composite itself stays authoritative.
func (ed *Editor) refreshLayer(l *Layer) {
	if err := l.refresh(); err != nil {
		Logger().Warn("pxedit: layer texture refresh failed",
			slog.Uint64("layer", uint64(l.id)), slog.Any("error", err))
	}
}

// refreshBatch re-uploads a batch texture that is already buffered.
func (ed *Editor) refreshBatch(b *Batch) {
	if err := ed.textures.refreshLive(b.textureKey(), b.buf); err != nil {
		Logger().Warn("pxedit: batch texture refresh failed",
			slog.Uint64("batch", b.id), slog.Any("error", err))
	}
}

// updateBounds recomputes the global boundings from visible layers.
func (ed *Editor) updateBounds() {
	var b Boundings
	for _, id := range ed.order {
		if l := ed.arena[id]; l.visible {
			b = b.Union(l.composite.bounds)
		}
	}
	ed.bounds = b
}

// editableLayer returns a document layer that accepts edits.
func (ed *Editor) editableLayer(id LayerID) (*Layer, error) {
	l := ed.Layer(id)
	if l == nil {
		return nil, fmt.Errorf("%w: %d", ErrLayerNotFound, id)
	}
	if l.locked {
		return nil, fmt.Errorf("%w: %d", ErrLayerLocked, id)
	}
	return l, nil
}

// structural validates a layer-structural operation and returns the
// layer's render-order index.
func (ed *Editor) structural(id LayerID) (int, error) {
	if ed.IsInActiveState() {
		return -1, ErrGestureActive
	}
	i := ed.orderIndex(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %d", ErrLayerNotFound, id)
	}
	return i, nil
}

// transformable validates a flip or rotation. It returns a nil layer for
// an empty one, which has nothing to transform.
func (ed *Editor) transformable(id LayerID) (*Layer, error) {
	l, err := ed.editableLayer(id)
	if err != nil {
		return nil, err
	}
	if _, err := ed.structural(id); err != nil {
		return nil, err
	}
	if l.composite.bounds.IsEmpty() {
		return nil, nil
	}
	return l, nil
}

// checkCoordinate validates a tile coordinate against the configured bound.
func (ed *Editor) checkCoordinate(x, y int) error {
	m := ed.cfg.maxCoord
	if x > m || x < -m || y > m || y < -m {
		return fmt.Errorf("%w: (%d, %d) exceeds %d", ErrCoordinateOutOfRange, x, y, m)
	}
	return nil
}

func (ed *Editor) orderIndex(id LayerID) int {
	for i, o := range ed.order {
		if o == id {
			return i
		}
	}
	return -1
}

func (ed *Editor) insertOrder(id LayerID, i int) {
	i = max(0, min(i, len(ed.order)))
	ed.order = append(ed.order, 0)
	copy(ed.order[i+1:], ed.order[i:])
	ed.order[i] = id
}

func (ed *Editor) removeOrder(id LayerID) {
	if i := ed.orderIndex(id); i >= 0 {
		ed.order = append(ed.order[:i], ed.order[i+1:]...)
	}
}

// normalizeName trims a layer name and puts it in Unicode NFC form.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
