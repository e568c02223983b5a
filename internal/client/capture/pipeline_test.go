package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeStream struct {
	frame    image.Image
	frameErr error
	stopped  bool
}

func (s *fakeStream) Frame() (image.Image, error) {
	if s.stopped {
		return nil, errors.New("stream stopped")
	}
	return s.frame, s.frameErr
}

func (s *fakeStream) Stop()        { s.stopped = true }
func (s *fakeStream) Active() bool { return !s.stopped }

type fakeDevice struct {
	stream  *fakeStream
	openErr error

	lastFacing Facing
}

func (d *fakeDevice) Open(ctx context.Context, facing Facing) (Stream, error) {
	d.lastFacing = facing
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.stream, nil
}

func testFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 80, A: 255})
		}
	}
	return img
}

// ---- pipeline ----

func TestPipeline_FreezeWithoutStreamIsNoop(t *testing.T) {
	p := NewPipeline(&fakeDevice{})

	c, err := p.Freeze()
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestPipeline_StartPassesFacing(t *testing.T) {
	dev := &fakeDevice{stream: &fakeStream{frame: testFrame()}}
	p := NewPipeline(dev)

	require.NoError(t, p.Start(context.Background(), FacingFront))
	require.Equal(t, FacingFront, dev.lastFacing)
	require.True(t, p.Active())
}

func TestPipeline_PermissionDeniedSurfaces(t *testing.T) {
	dev := &fakeDevice{openErr: ErrPermissionDenied}
	p := NewPipeline(dev)

	err := p.Start(context.Background(), FacingRear)
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.False(t, p.Active())
}

func TestPipeline_FreezeProducesJPEGAndStopsTracks(t *testing.T) {
	stream := &fakeStream{frame: testFrame()}
	p := NewPipeline(&fakeDevice{stream: stream})
	p.now = func() time.Time { return time.UnixMilli(1700000000000) }

	require.NoError(t, p.Start(context.Background(), FacingRear))

	c, err := p.Freeze()
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "capture-1700000000000.jpg", c.Name)
	require.Equal(t, "image/jpeg", c.MIME)

	// encoded data decodes back to a jpeg at native resolution
	img, err := jpeg.Decode(bytes.NewReader(c.Data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())

	// one-shot: stream released, a new Start is required
	require.True(t, stream.stopped)
	require.False(t, p.Active())

	c, err = p.Freeze()
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestPipeline_StartReleasesPreviousStream(t *testing.T) {
	first := &fakeStream{frame: testFrame()}
	dev := &fakeDevice{stream: first}
	p := NewPipeline(dev)

	require.NoError(t, p.Start(context.Background(), FacingRear))

	second := &fakeStream{frame: testFrame()}
	dev.stream = second
	require.NoError(t, p.Start(context.Background(), FacingRear))

	require.True(t, first.stopped)
	require.True(t, p.Active())
}

// ---- payload encoding ----

func TestEncodePayload_PlainBytes(t *testing.T) {
	got, err := EncodePayload(strings.NewReader("test"))
	require.NoError(t, err)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("test")), got)
}

func TestEncodePayload_StripsDataURIPrefix(t *testing.T) {
	got, err := EncodePayload(strings.NewReader("data:image/png;base64,dGVzdA=="))
	require.NoError(t, err)
	require.Equal(t, "dGVzdA==", got)
}

func TestEncodePayload_EmptyInputFails(t *testing.T) {
	_, err := EncodePayload(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEncodingFailed)
}

func TestEncodePayload_ReaderErrorWrapsEncodingFailed(t *testing.T) {
	_, err := EncodePayload(failingReader{})
	require.ErrorIs(t, err, ErrEncodingFailed)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk error") }

func TestCapture_Payload(t *testing.T) {
	stream := &fakeStream{frame: testFrame()}
	p := NewPipeline(&fakeDevice{stream: stream})
	require.NoError(t, p.Start(context.Background(), FacingRear))

	c, err := p.Freeze()
	require.NoError(t, err)

	payload, err := c.Payload()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	require.Equal(t, c.Data, raw)
}

// ---- file device ----

func TestFileDevice_MissingSourceIsDenied(t *testing.T) {
	dev := NewFileDevice("", "")
	_, err := dev.Open(context.Background(), FacingRear)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFileDevice_ReadsSnapshot(t *testing.T) {
	path := t.TempDir() + "/snap.jpg"
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testFrame(), nil))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	dev := NewFileDevice("", path)
	stream, err := dev.Open(context.Background(), FacingRear)
	require.NoError(t, err)
	require.True(t, stream.Active())

	img, err := stream.Frame()
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())

	stream.Stop()
	require.False(t, stream.Active())
	_, err = stream.Frame()
	require.Error(t, err)
}
