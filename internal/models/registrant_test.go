package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGender_Valid(t *testing.T) {
	assert.True(t, GenderMale.Valid())
	assert.True(t, GenderFemale.Valid())
	assert.True(t, GenderOther.Valid())
	assert.False(t, Gender("").Valid())
	assert.False(t, Gender("unknown").Valid())
	assert.False(t, Gender("Male").Valid())
}

func TestGender_UnmarshalJSON(t *testing.T) {
	var g Gender
	require.NoError(t, json.Unmarshal([]byte(`"female"`), &g))
	assert.Equal(t, GenderFemale, g)

	err := json.Unmarshal([]byte(`"robot"`), &g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gender")

	assert.Error(t, json.Unmarshal([]byte(`42`), &g))
}

func TestRegistrantInput_RejectsInvalidGender(t *testing.T) {
	payload := []byte(`{
		"fullName": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+12128675309",
		"address": "12 Oak Street",
		"gender": "neither",
		"dateOfBirth": "1990-01-15"
	}`)

	var input RegistrantInput
	assert.Error(t, json.Unmarshal(payload, &input))
}

func TestRegistrant_JSONFieldNames(t *testing.T) {
	registrant := Registrant{
		ID:       "abc",
		FullName: "Jane Doe",
		Gender:   GenderFemale,
	}

	raw, err := json.Marshal(registrant)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(raw, &asMap))

	for _, key := range []string{"id", "fullName", "email", "phone", "address", "gender", "dateOfBirth", "photoPath", "createdAt"} {
		assert.Contains(t, asMap, key)
	}

	// photoData is omitted while empty.
	assert.NotContains(t, asMap, "photoData")
}
