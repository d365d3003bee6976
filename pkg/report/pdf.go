package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Printable width of a landscape A4 page with 10mm margins
const pageWidth = 277.0

// PDF renders the datasets into a landscape document, one table after the other
func PDF(title string, datasets ...Dataset) ([]byte, error) {
	if len(datasets) == 0 {
		return nil, errors.New("pdf requires at least one dataset")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	for _, data := range datasets {
		if len(data.Headers) == 0 {
			return nil, fmt.Errorf("dataset %q has no headers", data.Title)
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, data.Title, "", 1, "L", false, 0, "")

		widths := columnWidths(data)
		pdf.SetFont("Arial", "B", 9)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for _, row := range data.Rows {
			for i := range data.Headers {
				value := ""
				if i < len(row) {
					value = row[i]
				}
				pdf.CellFormat(widths[i], 6, value, "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	buffer := &bytes.Buffer{}
	if err := pdf.Output(buffer); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buffer.Bytes(), nil
}

// columnWidths spreads the page width over the columns proportionally to their longest cell
func columnWidths(data Dataset) []float64 {
	lengths := make([]int, len(data.Headers))
	total := 0
	for i, header := range data.Headers {
		lengths[i] = max(len(header), 3)
		for _, row := range data.Rows {
			if i < len(row) {
				lengths[i] = max(lengths[i], len(row[i]))
			}
		}
		total += lengths[i]
	}

	widths := make([]float64, len(lengths))
	for i, length := range lengths {
		widths[i] = pageWidth * float64(length) / float64(total)
	}
	return widths
}
