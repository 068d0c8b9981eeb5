package photo

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jlbbacs/quick-registration/internal/models"
)

// MaxFileBytes is the upload size ceiling for the file strategy.
const MaxFileBytes = 5 << 20

// FromFile validates an uploaded file's content and converts it into the
// normalized data URI. The media type is sniffed from the bytes rather than
// trusted from the client; anything that is not an image, or that exceeds
// maxBytes, is rejected before any encoding happens.
func FromFile(content []byte, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = MaxFileBytes
	}

	if int64(len(content)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", models.ErrImageTooLarge, len(content), maxBytes)
	}

	detected := mimetype.Detect(content)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", models.ErrNotAnImage, detected.String())
	}

	return EncodeDataURI(detected.String(), content), nil
}

// ValidateDataURI checks an inline photo payload against the same rules as
// FromFile: the decoded bytes must fit the size ceiling and sniff as an
// image. The declared media type in the URI is ignored; only the bytes
// decide. Submission and edit paths run this before any record is stored.
func ValidateDataURI(uri string, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = MaxFileBytes
	}

	_, data, err := ParseDataURI(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNotAnImage, err)
	}

	if int64(len(data)) > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", models.ErrImageTooLarge, len(data), maxBytes)
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return fmt.Errorf("%w: detected %s", models.ErrNotAnImage, detected.String())
	}

	return nil
}
