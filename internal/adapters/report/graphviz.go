package report

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/zerr"
)

// GraphvizRenderer implements ports.ImageRenderer with the `dot` program.
type GraphvizRenderer struct {
	// Program is the layout binary looked up on PATH.
	Program string
}

// NewGraphvizRenderer creates a renderer using `dot`.
func NewGraphvizRenderer() *GraphvizRenderer {
	return &GraphvizRenderer{Program: "dot"}
}

// Render lays out dot as SVG. The XML prolog is dropped so the result can be
// embedded in HTML.
func (g *GraphvizRenderer) Render(ctx context.Context, dot string) ([]byte, error) {
	path, err := exec.LookPath(g.Program)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRendererUnavailable, err.Error()), "program", g.Program)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-Tsvg") //nolint:gosec // Program is configured, not user input
	cmd.Stdin = strings.NewReader(dot)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "graph layout failed"), "stderr", strings.TrimSpace(stderr.String()))
	}

	svg := stdout.Bytes()
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		svg = svg[i:]
	}
	return svg, nil
}
