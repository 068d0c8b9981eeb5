// Package photo normalizes the two capture strategies (camera snapshot and
// file upload) into one encoded-image representation: a data URI carrying
// both the media type and the base64 image bytes, suitable for inline
// display and for storage on a registrant record.
package photo

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeDataURI builds the normalized representation from raw image bytes
// and their media type.
func EncodeDataURI(mediaType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI splits a data URI back into its media type and raw bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}

	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep == -1 {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}

	mediaType := rest[:sep]
	payload := rest[sep+len(";base64,"):]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}

	return mediaType, data, nil
}
