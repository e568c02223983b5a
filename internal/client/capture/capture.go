// Package capture implements the camera-to-payload pipeline: acquire a
// stream from a capture device, freeze the current frame into an encoded
// still image, and convert arbitrary media files into the base64 transport
// string the gateway expects.
package capture

import (
	"context"
	"errors"
	"image"
)

// Facing selects which camera to open: front for self-identification
// captures, rear for evidence captures.
type Facing string

const (
	FacingFront Facing = "front"
	FacingRear  Facing = "rear"
)

var (
	// ErrPermissionDenied is returned when camera access is refused or the
	// requested device is not available.
	ErrPermissionDenied = errors.New("camera permission denied")

	// ErrEncodingFailed wraps failures while converting media to its
	// transport representation.
	ErrEncodingFailed = errors.New("media encoding failed")
)

// Stream is a live camera stream bound to a preview.
//
// Frame returns the frame currently visible on the preview at its native
// resolution. Stop releases the underlying device; a stopped stream is no
// longer Active and Frame fails.
type Stream interface {
	Frame() (image.Image, error)
	Stop()
	Active() bool
}

// Device grants access to a camera. Implementations return
// ErrPermissionDenied when access is refused.
type Device interface {
	Open(ctx context.Context, facing Facing) (Stream, error)
}
