// Package export renders registrant listings into downloadable documents.
// It is a pure consumer of the filtered listing and performs no mutation.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/jlbbacs/quick-registration/internal/models"
	"github.com/jlbbacs/quick-registration/internal/photo"
)

const photoCellSize = 24.0

// RegistrantsPDF renders the given registrants, one block per record with
// the inlined photo when present, and returns the PDF bytes.
func RegistrantsPDF(registrants []models.Registrant) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Registrants", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Registrants", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for i, registrant := range registrants {
		writeRegistrant(pdf, i+1, registrant)
	}

	if len(registrants) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, "No registrants found.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRegistrant(pdf *fpdf.Fpdf, ordinal int, registrant models.Registrant) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s", ordinal, registrant.FullName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Email", registrant.Email},
		{"Phone", registrant.Phone},
		{"Address", registrant.Address},
		{"Gender", string(registrant.Gender)},
		{"Date of birth", registrant.DateOfBirth},
		{"Registered", registrant.CreatedAt.Format("2006-01-02 15:04")},
	}
	for _, row := range rows {
		pdf.CellFormat(35, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}

	embedPhoto(pdf, registrant)
	pdf.Ln(4)
}

// embedPhoto inlines the registrant's photo when it decodes to a format the
// renderer supports; anything else is skipped silently so the export never
// fails over one bad image.
func embedPhoto(pdf *fpdf.Fpdf, registrant models.Registrant) {
	if registrant.PhotoData == "" {
		return
	}

	mediaType, data, err := photo.ParseDataURI(registrant.PhotoData)
	if err != nil {
		return
	}

	var imageType string
	switch mediaType {
	case "image/jpeg":
		imageType = "JPG"
	case "image/png":
		imageType = "PNG"
	case "image/gif":
		imageType = "GIF"
	default:
		return
	}

	name := registrant.ID
	if name == "" {
		name = strings.ToLower(registrant.FullName)
	}

	options := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return
	}

	pdf.ImageOptions(name, pdf.GetX(), pdf.GetY(), photoCellSize, 0, true, options, 0, "")
}
