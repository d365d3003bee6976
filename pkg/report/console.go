package report

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Palette
var (
	Primary = lipgloss.Color("#8B5CF6")
	Accent  = lipgloss.Color("#F97316")
	Error   = lipgloss.Color("#F43F5E")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	studyStyle = cellStyle.
			Foreground(Primary).
			Bold(true)

	violationStyle = cellStyle.
			Foreground(Error)

	emptyStyle = cellStyle.
			Foreground(TextDim)
)

// Render lays the dataset out as a bordered table
func Render(data Dataset) string {
	board := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		Headers(data.Headers...).
		Rows(data.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(data.Rows) || col >= len(data.Rows[row]) {
				return cellStyle
			}
			cell := data.Rows[row][col]
			switch {
			case cell == "-":
				return emptyStyle
			case cell == "violation":
				return violationStyle
			case strings.HasSuffix(cell, "*"):
				return studyStyle
			default:
				return cellStyle
			}
		})

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(data.Title), board.String())
}

// Print writes every dataset to the writer, downsampling colors to what the writer supports
func Print(writer io.Writer, datasets ...Dataset) error {
	for _, data := range datasets {
		if _, err := lipgloss.Fprintln(writer, Render(data)); err != nil {
			return fmt.Errorf("cannot print %q: %w", data.Title, err)
		}
	}
	return nil
}
