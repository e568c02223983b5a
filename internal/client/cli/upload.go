package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecosync/ecosync-cli/internal/client/capture"
	"github.com/ecosync/ecosync-cli/internal/client/models"
)

// upload submits a cleanup post. Media comes either from the camera (one
// Start → Freeze cycle) or from a file picked by path; both go through the
// same payload encoding.
func (a *App) upload(ctx context.Context) {
	snap := a.coord.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Sign in to upload.")
		return
	}

	caption, err := GetSimpleText(a.reader, "Caption", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	location, err := GetSimpleText(a.reader, "Location (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	source, err := GetSimpleText(a.reader, "Media source ('camera' or a file path)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	var payload, mimeType, mediaType string
	if source == "camera" {
		payload, mimeType, err = a.captureFromCamera(ctx)
		mediaType = models.MediaTypeImage
	} else {
		payload, mimeType, mediaType, err = encodePickedFile(source)
	}
	if err != nil {
		fmt.Fprintf(a.out, "Upload failed: %v\n", err)
		return
	}

	post, err := a.api.CreatePost(ctx, models.PostCreate{
		UserID:      snap.User.UID,
		UserEmail:   snap.User.Email,
		Username:    snap.User.Username,
		Caption:     caption,
		Location:    location,
		MediaBase64: payload,
		MediaMIME:   mimeType,
		MediaType:   mediaType,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Upload failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Submitted %s (status: %s)\n", post.ID, post.Status)
	a.coord.Refresh(ctx)
}

// captureFromCamera runs one capture cycle on the rear camera: start the
// stream, freeze the frame on the user's signal, and encode the result.
func (a *App) captureFromCamera(ctx context.Context) (payload, mimeType string, err error) {
	if err := a.pipeline.Start(ctx, capture.FacingRear); err != nil {
		return "", "", err
	}

	if _, err := GetSimpleText(a.reader, "Camera ready. Press Enter to capture", a.out); err != nil {
		a.pipeline.Stop()
		return "", "", err
	}

	shot, err := a.pipeline.Freeze()
	if err != nil {
		return "", "", err
	}
	if shot == nil {
		return "", "", fmt.Errorf("no active camera stream")
	}

	payload, err = shot.Payload()
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(a.out, "Captured %s\n", shot.Name)
	return payload, shot.MIME, nil
}

func encodePickedFile(path string) (payload, mimeType, mediaType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", "", err
	}
	defer f.Close()

	payload, err = capture.EncodePayload(f)
	if err != nil {
		return "", "", "", err
	}

	mimeType = mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	mediaType = models.MediaTypeImage
	if strings.HasPrefix(mimeType, "video/") {
		mediaType = models.MediaTypeVideo
	}
	return payload, mimeType, mediaType, nil
}

// report files a lost & found item.
func (a *App) report(ctx context.Context) {
	snap := a.coord.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Sign in to report an item.")
		return
	}

	prompts := []string{"Title", "Description", "Location", "Contact"}
	values := make([]string, len(prompts))
	for i, p := range prompts {
		v, err := GetSimpleText(a.reader, p, a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		values[i] = v
	}

	item, err := a.api.CreateLostItem(ctx, models.LostItemCreate{
		UserID:      snap.User.UID,
		UserEmail:   snap.User.Email,
		Title:       values[0],
		Description: values[1],
		Location:    values[2],
		Contact:     values[3],
	})
	if err != nil {
		fmt.Fprintf(a.out, "Report failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Reported %s (status: %s)\n", item.ID, item.Status)
	a.coord.Refresh(ctx)
}
