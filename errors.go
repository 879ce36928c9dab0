package pxedit

import "errors"

// Misuse errors
var (
	// ErrInvalidAlpha indicates a color alpha outside [0, 1].
	ErrInvalidAlpha = errors.New("pxedit: alpha out of range [0, 1]")

	// ErrCoordinateOutOfRange indicates a tile coordinate beyond the configured bound.
	ErrCoordinateOutOfRange = errors.New("pxedit: coordinate out of range")

	// ErrInvalidKind indicates a command kind that does not match the operation.
	ErrInvalidKind = errors.New("pxedit: invalid command kind")

	// ErrGestureActive indicates that an operation is not allowed while a tool gesture is active.
	ErrGestureActive = errors.New("pxedit: tool gesture in progress")
)

// Layer errors
var (
	// ErrLayerNotFound indicates that a layer ID is unknown or no longer part of the document.
	ErrLayerNotFound = errors.New("pxedit: layer not found")

	// ErrLayerLocked indicates an edit attempt on a locked layer.
	ErrLayerLocked = errors.New("pxedit: layer is locked")

	// ErrNoLayerBelow indicates a merge of the bottom layer.
	ErrNoLayerBelow = errors.New("pxedit: no layer below")
)

// Batch errors
var (
	// ErrEmptyBatch indicates that a batch holds no pixels and was discarded instead of enqueued.
	ErrEmptyBatch = errors.New("pxedit: batch is empty")

	// ErrBatchNotFound indicates that a batch is not part of any layer's batch list.
	ErrBatchNotFound = errors.New("pxedit: batch not found in any layer")

	// ErrBatchDead indicates an operation on a batch that was already killed.
	ErrBatchDead = errors.New("pxedit: batch already killed")

	// ErrBatchQueued indicates an attempt to enqueue a batch that already has a command.
	ErrBatchQueued = errors.New("pxedit: batch already enqueued")
)
