package ports

import (
	"context"
	"io"

	"go.trai.ch/sci/internal/core/domain"
)

// AuditReporter turns reconstructed lineage into presentable output.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type AuditReporter interface {
	// DOT returns a Graphviz description of g.
	DOT(g *domain.Graph) string

	// Table writes the task table.
	Table(w io.Writer, rows []domain.TaskRow) error

	// HTML writes a standalone HTML document for report.
	HTML(w io.Writer, report *domain.Report) error
}

// ImageRenderer renders a graph description with an external layout program.
type ImageRenderer interface {
	// Render returns SVG for dot, or domain.ErrRendererUnavailable.
	Render(ctx context.Context, dot string) ([]byte, error)
}
