package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Gender is the closed set of accepted gender values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// UnmarshalJSON enforces the closed set at the data-model boundary.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	candidate := Gender(value)
	if !candidate.Valid() {
		return fmt.Errorf("invalid gender %q: must be male, female or other", value)
	}

	*g = candidate
	return nil
}

// Registrant is the persisted registration record. The id and createdAt
// fields are assigned at creation and never change; photoData and photoPath
// always move together as a pair.
type Registrant struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Gender      Gender    `json:"gender"`
	DateOfBirth string    `json:"dateOfBirth"`
	PhotoData   string    `json:"photoData,omitempty"`
	PhotoPath   string    `json:"photoPath"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RegistrantInput carries the mutable fields supplied by the submission and
// edit paths. Field formats arrive pre-validated by the form layer; only
// gender is re-checked here because it is a closed variant.
type RegistrantInput struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Gender      Gender `json:"gender" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	PhotoData   string `json:"photoData,omitempty"`
}

// PaginatedRegistrants is the listing response shape.
type PaginatedRegistrants struct {
	Data       []Registrant `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}
