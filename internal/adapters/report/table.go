package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/ui/style"
)

const (
	colStart = iota
	colCommand
	colDuration
	colSeconds
)

// Table writes the chronological task table.
func (r *Reporter) Table(w io.Writer, rows []domain.TaskRow) error {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{
			row.StartTime.String(),
			row.Command,
			row.Duration,
			strconv.FormatFloat(row.DurationS, 'f', 3, 64),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return style.Header
			case col == colDuration || col == colSeconds:
				return style.Muted
			default:
				return style.Cell
			}
		}).
		Headers("START TIME", "COMMAND", "DURATION", "SECONDS").
		Rows(data...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
