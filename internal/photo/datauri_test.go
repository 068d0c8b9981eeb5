package photo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURI_RoundTrip(t *testing.T) {
	original := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	uri := EncodeDataURI("image/png", original)
	assert.Contains(t, uri, "data:image/png;base64,")

	mediaType, data, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, original, data)
}

func TestParseDataURI_RejectsMalformedInput(t *testing.T) {
	_, _, err := ParseDataURI("http://example.com/photo.png")
	assert.Error(t, err)

	_, _, err = ParseDataURI("data:image/png,rawpayload")
	assert.Error(t, err)

	_, _, err = ParseDataURI("data:image/png;base64,not!!valid!!base64")
	assert.Error(t, err)
}
