package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/five82/mosaic/internal/imagedata"
	"github.com/five82/mosaic/internal/viewer"
)

// PlaceholderLoader completes without network access and without art.
type PlaceholderLoader struct{}

// Load implements Loader.
func (PlaceholderLoader) Load(ctx context.Context, _ imagedata.Item, _ Size) (string, error) {
	return "", ctx.Err()
}

// ErrRendererMissing means the chafa binary is not on PATH.
var ErrRendererMissing = errors.New("chafa is not installed")

// ChafaLoader downloads the narrowest adequate source and renders it with
// chafa's symbol output.
type ChafaLoader struct {
	Client      *Client
	CellWidthPx int
}

// NewChafaLoader returns a ChafaLoader with a default Client.
func NewChafaLoader() *ChafaLoader {
	return &ChafaLoader{Client: NewClient(), CellWidthPx: viewer.DefaultCellWidthPx}
}

// Load implements Loader.
func (l *ChafaLoader) Load(ctx context.Context, item imagedata.Item, size Size) (string, error) {
	if size.Cols <= 0 || size.Rows <= 0 {
		return "", fmt.Errorf("render %d: empty area %dx%d", item.ID, size.Cols, size.Rows)
	}
	chafaPath, err := exec.LookPath("chafa")
	if err != nil {
		return "", ErrRendererMissing
	}

	cell := l.CellWidthPx
	if cell <= 0 {
		cell = viewer.DefaultCellWidthPx
	}
	src := item.SourceFor(size.Cols * cell)
	data, err := l.Client.Fetch(ctx, src.URL)
	if err != nil {
		return "", err
	}

	dims := fmt.Sprintf("%dx%d", size.Cols, size.Rows)
	cmd := exec.CommandContext(ctx, chafaPath,
		"--size", dims,
		"--view-size", dims,
		"--align", "mid,center",
		"--format", "symbols",
		"-",
	)
	cmd.Stdin = bytes.NewReader(data)
	output, err := cmd.CombinedOutput()
	trimmed := strings.TrimRight(string(output), "\r\n")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("render image via chafa: %w: %s", err, strings.TrimSpace(trimmed))
	}
	if strings.TrimSpace(trimmed) == "" {
		return "", fmt.Errorf("render image via chafa: empty output")
	}
	return trimmed, nil
}
