package capture

import (
	"context"
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// FileDevice is a capture device fed by snapshot files, one path per facing
// mode (for example a path an external camera tool keeps overwriting). A
// facing with no configured path behaves as a denied capability.
type FileDevice struct {
	Sources map[Facing]string
}

func NewFileDevice(front, rear string) *FileDevice {
	return &FileDevice{Sources: map[Facing]string{
		FacingFront: front,
		FacingRear:  rear,
	}}
}

func (d *FileDevice) Open(ctx context.Context, facing Facing) (Stream, error) {
	path := d.Sources[facing]
	if path == "" {
		return nil, fmt.Errorf("%w: no %s camera source configured", ErrPermissionDenied, facing)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	}
	return &fileStream{path: path}, nil
}

// fileStream re-reads its source on every Frame call so the newest snapshot
// wins, approximating a live preview.
type fileStream struct {
	path    string
	stopped bool
}

func (s *fileStream) Frame() (image.Image, error) {
	if s.stopped {
		return nil, fmt.Errorf("stream already stopped")
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open camera source: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode camera frame: %w", err)
	}
	return img, nil
}

func (s *fileStream) Stop() {
	s.stopped = true
}

func (s *fileStream) Active() bool {
	return !s.stopped
}
