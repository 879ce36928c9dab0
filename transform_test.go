package pxedit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTileMatrixInvert(t *testing.T) {
	b := NewBoundings(-3, 5, 4, 2)
	tests := []struct {
		name string
		m    tileMatrix
	}{
		{"identity", identityTiles()},
		{"flip horizontal", flipTiles(b, FlipHorizontal)},
		{"flip vertical", flipTiles(b, FlipVertical)},
		{"rotate", rotateTiles(b)},
		{"rotate twice", rotateTiles(rotateTiles(b).Bounds(b)).Multiply(rotateTiles(b))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Invert().Multiply(tt.m); got != identityTiles() {
				t.Errorf("inverse * m = %+v, want identity", got)
			}
			x, y := tt.m.Apply(-2, 6)
			if x, y = tt.m.Invert().Apply(x, y); x != -2 || y != 6 {
				t.Errorf("round trip = (%d, %d), want (-2, 6)", x, y)
			}
		})
	}
}

func TestTileMatrixBounds(t *testing.T) {
	b := NewBoundings(2, 3, 4, 2)
	tests := []struct {
		name string
		m    tileMatrix
		want Boundings
	}{
		{"flip horizontal", flipTiles(b, FlipHorizontal), b},
		{"flip vertical", flipTiles(b, FlipVertical), b},
		{"rotate", rotateTiles(b), NewBoundings(2, 3, 2, 4)},
	}
	for _, tt := range tests {
		if got := tt.m.Bounds(b); got != tt.want {
			t.Errorf("%s: Bounds = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := rotateTiles(b).Bounds(Boundings{X: 2, Y: 3}); !got.IsEmpty() {
		t.Errorf("empty bounds mapped to %v", got)
	}
}

func TestFlipLayer(t *testing.T) {
	ed, _ := newTestEditor(t)
	l := mustLayer(t, ed, "ink", Boundings{})
	paint(t, ed, l.ID(), dot{0, 0, red}, dot{2, 1, blue})
	before := snapshot(ed)

	if err := ed.FlipLayer(l.ID(), FlipHorizontal); err != nil {
		t.Fatal(err)
	}
	if !l.PixelAt(2, 0).Equal(red) || !l.PixelAt(0, 1).Equal(blue) || !l.PixelAt(0, 0).IsEmpty() {
		t.Errorf("horizontal flip: (2,0)=%v (0,1)=%v (0,0)=%v", l.PixelAt(2, 0), l.PixelAt(0, 1), l.PixelAt(0, 0))
	}
	if got, want := l.Bounds(), NewBoundings(0, 0, 3, 2); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if cmd := ed.Stack().At(ed.Stack().Cursor()); cmd.Kind() != KindLayerFlip {
		t.Errorf("top command kind = %v", cmd.Kind())
	}

	ed.Undo()
	if diff := cmp.Diff(before, snapshot(ed)); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}

	if err := ed.FlipLayer(l.ID(), FlipVertical); err != nil {
		t.Fatal(err)
	}
	if !l.PixelAt(0, 1).Equal(red) || !l.PixelAt(2, 0).Equal(blue) {
		t.Errorf("vertical flip: (0,1)=%v (2,0)=%v", l.PixelAt(0, 1), l.PixelAt(2, 0))
	}
	if err := ed.FlipLayer(l.ID(), FlipAxis(9)); err == nil {
		t.Error("unknown axis should fail")
	}
}

func TestRotateLayer(t *testing.T) {
	ed, _ := newTestEditor(t)
	l := mustLayer(t, ed, "ink", Boundings{})
	paint(t, ed, l.ID(), dot{0, 0, red}, dot{1, 0, blue}, dot{0, 1, green})

	if err := ed.RotateLayer(l.ID(), 1); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		want Color
	}{
		{1, 0, red},
		{1, 1, blue},
		{0, 0, green},
		{0, 1, Transparent},
	}
	for _, tt := range tests {
		if got := l.PixelAt(tt.x, tt.y); !got.Equal(tt.want) {
			t.Errorf("PixelAt(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRotateLayerKeepsTopLeft(t *testing.T) {
	ed, _ := newTestEditor(t)
	l := mustLayer(t, ed, "ink", Boundings{})
	paint(t, ed, l.ID(), dot{3, 5, red}, dot{5, 5, blue})
	before := snapshot(ed)

	if err := ed.RotateLayer(l.ID(), 1); err != nil {
		t.Fatal(err)
	}
	if got, want := l.Bounds(), NewBoundings(3, 5, 1, 3); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if !l.PixelAt(3, 5).Equal(red) || !l.PixelAt(3, 7).Equal(blue) {
		t.Errorf("rotated: (3,5)=%v (3,7)=%v", l.PixelAt(3, 5), l.PixelAt(3, 7))
	}

	// A counter-clockwise turn about the same corner undoes it.
	if err := ed.RotateLayer(l.ID(), -1); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, snapshot(ed)); diff != "" {
		t.Errorf("after turning back (-want +got):\n%s", diff)
	}

	n := ed.Stack().Len()
	if err := ed.RotateLayer(l.ID(), 4); err != nil {
		t.Fatal(err)
	}
	if ed.Stack().Len() != n {
		t.Error("a full turn should not record a command")
	}
}

func TestTransformEmptyOrLockedLayer(t *testing.T) {
	ed, _ := newTestEditor(t)
	l := mustLayer(t, ed, "ink", Boundings{})
	n := ed.Stack().Len()
	if err := ed.FlipLayer(l.ID(), FlipHorizontal); err != nil {
		t.Fatal(err)
	}
	if err := ed.RotateLayer(l.ID(), 1); err != nil {
		t.Fatal(err)
	}
	if ed.Stack().Len() != n {
		t.Error("transforming an empty layer should not record a command")
	}

	paint(t, ed, l.ID(), dot{0, 0, red})
	if err := ed.SetLayerLocked(l.ID(), true); err != nil {
		t.Fatal(err)
	}
	if err := ed.RotateLayer(l.ID(), 1); !errors.Is(err, ErrLayerLocked) {
		t.Errorf("locked rotate error = %v", err)
	}
	if err := ed.FlipLayer(l.ID(), FlipVertical); !errors.Is(err, ErrLayerLocked) {
		t.Errorf("locked flip error = %v", err)
	}
}

func TestTransformRefreshesBatchTextures(t *testing.T) {
	ed, r := newTestEditor(t)
	l := mustLayer(t, ed, "ink", Boundings{})
	b := paint(t, ed, l.ID(), dot{0, 0, red}, dot{1, 0, blue})
	if b.Texture() == nil {
		t.Fatal("enqueued batch should have a texture")
	}

	if err := ed.RotateLayer(l.ID(), 1); err != nil {
		t.Fatal(err)
	}
	tex := b.Texture().(*fakeTexture)
	if tex.width != 1 || tex.height != 2 {
		t.Errorf("batch texture = %dx%d, want 1x2", tex.width, tex.height)
	}
	r.checkNoDoubleFree(t)
}

func TestMergeDown(t *testing.T) {
	ed, r := newTestEditor(t)
	a := mustLayer(t, ed, "a", Boundings{})
	b := mustLayer(t, ed, "b", Boundings{})
	paint(t, ed, a.ID(), dot{0, 0, red})
	paint(t, ed, b.ID(), dot{0, 0, green}, dot{1, 0, blue})
	before := snapshot(ed)

	if err := ed.MergeDown(b.ID()); err != nil {
		t.Fatal(err)
	}
	if got := len(ed.Layers()); got != 1 || ed.Layer(b.ID()) != nil {
		t.Fatalf("layers after merge = %d, upper found = %v", got, ed.Layer(b.ID()) != nil)
	}
	if !a.PixelAt(0, 0).Equal(green) || !a.PixelAt(1, 0).Equal(blue) {
		t.Errorf("merged pixels: %v %v", a.PixelAt(0, 0), a.PixelAt(1, 0))
	}
	if got, want := a.Bounds(), NewBoundings(0, 0, 2, 1); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	cmd, ok := ed.Stack().At(ed.Stack().Cursor()).(*LayerMergeCommand)
	if !ok || cmd.Layer() != b.ID() || cmd.Into() != a.ID() || cmd.Batch() == nil {
		t.Fatalf("top command = %#v", ed.Stack().At(ed.Stack().Cursor()))
	}
	if err := cmd.Batch().Kill(); !errors.Is(err, ErrBatchQueued) {
		t.Errorf("killing the merge batch error = %v, want ErrBatchQueued", err)
	}

	ed.Undo()
	if diff := cmp.Diff(before, snapshot(ed)); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}

	// A new edit discards the merge and its batch.
	paint(t, ed, a.ID(), dot{4, 4, red})
	if !cmd.Batch().IsKilled() || len(a.Batches()) != 2 {
		t.Errorf("merge batch killed = %v, layer batches = %d", cmd.Batch().IsKilled(), len(a.Batches()))
	}
	r.checkNoDoubleFree(t)
}

func TestMergeDownTranslucent(t *testing.T) {
	ed, _ := newTestEditor(t)
	a := mustLayer(t, ed, "a", Boundings{})
	b := mustLayer(t, ed, "b", Boundings{})
	paint(t, ed, a.ID(), dot{0, 0, MustColor(0, 0, 255, 0.5)})
	paint(t, ed, b.ID(), dot{0, 0, MustColor(255, 0, 0, 0.5)})

	if err := ed.MergeDown(b.ID()); err != nil {
		t.Fatal(err)
	}
	data, _ := a.Pixels()
	if diff := cmp.Diff([]byte{85, 0, 170, 191}, data); diff != "" {
		t.Errorf("merged pixel (-want +got):\n%s", diff)
	}
	ed.Undo()
	data, _ = a.Pixels()
	if diff := cmp.Diff([]byte{0, 0, 255, 128}, data); diff != "" {
		t.Errorf("restored pixel (-want +got):\n%s", diff)
	}
}

func TestMergeDownErrors(t *testing.T) {
	ed, _ := newTestEditor(t)
	a := mustLayer(t, ed, "a", Boundings{})
	b := mustLayer(t, ed, "b", Boundings{})

	if err := ed.MergeDown(a.ID()); !errors.Is(err, ErrNoLayerBelow) {
		t.Errorf("bottom merge error = %v, want ErrNoLayerBelow", err)
	}
	if err := ed.MergeDown(999); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("unknown merge error = %v, want ErrLayerNotFound", err)
	}
	if err := ed.SetLayerLocked(a.ID(), true); err != nil {
		t.Fatal(err)
	}
	if err := ed.MergeDown(b.ID()); !errors.Is(err, ErrLayerLocked) {
		t.Errorf("locked lower error = %v, want ErrLayerLocked", err)
	}
	ed.Undo()

	// An empty upper layer merges without a batch.
	if err := ed.MergeDown(b.ID()); err != nil {
		t.Fatal(err)
	}
	cmd := ed.Stack().At(ed.Stack().Cursor()).(*LayerMergeCommand)
	if cmd.Batch() != nil || len(a.Batches()) != 0 {
		t.Errorf("empty merge batch = %v, layer batches = %d", cmd.Batch(), len(a.Batches()))
	}
	ed.Undo()
	if ed.Layer(b.ID()) == nil {
		t.Error("undo should restore the merged layer")
	}
}

func TestStructuralRoundTrip(t *testing.T) {
	ed, r := newTestEditor(t)
	states := [][]layerState{snapshot(ed)}
	record := func() { states = append(states, snapshot(ed)) }
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		record()
	}

	a := mustLayer(t, ed, "a", NewBoundings(-1, -1, 3, 2))
	record()
	b := mustLayer(t, ed, "b", Boundings{})
	record()
	half := MustColor(0, 255, 0, 0.5)
	paint(t, ed, a.ID(), dot{0, 0, red}, dot{4, 2, half})
	record()
	paint(t, ed, b.ID(), dot{4, 2, MustColor(0, 0, 255, 0.3)}, dot{-2, 3, blue})
	record()
	must(ed.FlipLayer(a.ID(), FlipHorizontal))
	must(ed.RotateLayer(b.ID(), 3))
	must(ed.TranslateLayer(b.ID(), 1, 1))
	must(ed.MergeDown(b.ID()))
	must(ed.RotateLayer(a.ID(), 2))
	must(ed.FillBucket(a.ID(), 0, 0, half))
	must(ed.FlipLayer(a.ID(), FlipVertical))

	n := ed.Stack().Cursor() + 1
	if n != len(states)-1 {
		t.Fatalf("cursor+1 = %d, recorded %d transitions", n, len(states)-1)
	}
	for i := n; i > 0; i-- {
		ed.Undo()
		if diff := cmp.Diff(states[i-1], snapshot(ed)); diff != "" {
			t.Fatalf("state after undo to %d mismatch (-want +got):\n%s", i-1, diff)
		}
	}
	for i := 1; i <= n; i++ {
		ed.Redo()
		if diff := cmp.Diff(states[i], snapshot(ed)); diff != "" {
			t.Fatalf("state after redo to %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	r.checkNoDoubleFree(t)
}
