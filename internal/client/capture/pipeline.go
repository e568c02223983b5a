package capture

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"time"
)

// jpegQuality is the compression level for frozen frames.
const jpegQuality = 85

// Capture is a frozen camera frame ready for upload.
type Capture struct {
	Name string
	MIME string
	Data []byte
}

// Pipeline owns at most one live stream at a time. Freezing a frame is a
// one-shot action: it releases the stream, and Start must be called again
// before the next capture.
type Pipeline struct {
	device Device
	stream Stream

	now func() time.Time // test seam
}

func NewPipeline(device Device) *Pipeline {
	return &Pipeline{device: device, now: time.Now}
}

// Start acquires a camera stream with the preferred facing mode. Any stream
// still held from a previous Start is released first, so the device lock is
// never leaked.
func (p *Pipeline) Start(ctx context.Context, facing Facing) error {
	p.Stop()

	stream, err := p.device.Open(ctx, facing)
	if err != nil {
		return fmt.Errorf("start capture: %w", err)
	}
	p.stream = stream
	return nil
}

// Freeze snapshots the currently visible frame into a JPEG named after the
// capture timestamp and releases the stream. Without an active stream it is
// a no-op returning (nil, nil).
func (p *Pipeline) Freeze() (*Capture, error) {
	if p.stream == nil || !p.stream.Active() {
		return nil, nil
	}

	frame, err := p.stream.Frame()
	p.Stop()
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	return &Capture{
		Name: fmt.Sprintf("capture-%d.jpg", p.now().UnixMilli()),
		MIME: "image/jpeg",
		Data: buf.Bytes(),
	}, nil
}

// Stop releases the current stream, if any. Safe to call repeatedly and on
// view teardown.
func (p *Pipeline) Stop() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream = nil
	}
}

// Active reports whether a stream is currently bound to the preview.
func (p *Pipeline) Active() bool {
	return p.stream != nil && p.stream.Active()
}
