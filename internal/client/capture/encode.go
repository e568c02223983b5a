package capture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
)

// EncodePayload converts media bytes into the base64 transport string sent
// to the gateway. Input that is already a data URI has its
// "data:<mime>;base64," prefix stripped so the same path serves
// camera-sourced and file-picked media uniformly.
func EncodePayload(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty media", ErrEncodingFailed)
	}

	if payload, ok := stripDataURI(data); ok {
		return payload, nil
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Payload returns the capture's transport encoding.
func (c *Capture) Payload() (string, error) {
	return EncodePayload(bytes.NewReader(c.Data))
}

// stripDataURI returns the base64 payload of a "data:<mime>;base64,..." URI
// and whether the input was one.
func stripDataURI(data []byte) (string, bool) {
	if !bytes.HasPrefix(data, []byte("data:")) {
		return "", false
	}
	marker := []byte(";base64,")
	i := bytes.Index(data, marker)
	if i < 0 {
		return "", false
	}
	return string(data[i+len(marker):]), true
}
