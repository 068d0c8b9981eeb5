package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
)

// jpegQuality is the fixed encoding quality for camera snapshots.
const jpegQuality = 80

// FrameSource is a live capture device. Open acquires the underlying
// hardware; Close must always be called once Open succeeded, and must be
// safe to call more than once. Frame returns the current frame while the
// source is open.
type FrameSource interface {
	Open(ctx context.Context) error
	Frame() (image.Image, error)
	Close() error
}

// Snapshot acquires the source, grabs a single frame, mirrors it
// horizontally to match the selfie view, and encodes it as a JPEG data URI.
// The source is released on every exit path once acquired; open failures
// (permission denied, no device, device busy) propagate unchanged so the
// caller can fall back to the file strategy.
func Snapshot(ctx context.Context, source FrameSource) (string, error) {
	if err := source.Open(ctx); err != nil {
		return "", err
	}
	defer source.Close()

	frame, err := source.Frame()
	if err != nil {
		return "", fmt.Errorf("failed to capture frame: %w", err)
	}

	mirrored := mirrorHorizontal(frame)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, mirrored, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return EncodeDataURI("image/jpeg", buf.Bytes()), nil
}

// mirrorHorizontal flips an image around its vertical axis.
func mirrorHorizontal(src image.Image) image.Image {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Dx-1-(x-Min.X) into the zero-origin destination.
			dst.Set(bounds.Max.X-1-x, y-bounds.Min.Y, src.At(x, y))
		}
	}

	return dst
}
