package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Pdftoppm rasterizes PDF pages with poppler's pdftoppm.
type Pdftoppm struct {
	Binary  string
	DPI     int
	Timeout time.Duration
}

func NewPdftoppm() *Pdftoppm {
	return &Pdftoppm{Binary: "pdftoppm", DPI: 300, Timeout: 20 * time.Second}
}

// RenderFirstPage renders page 1 of pdf to an RGB image. The scratch
// directory is removed on every path.
func (p *Pdftoppm) RenderFirstPage(ctx context.Context, pdf []byte) (image.Image, error) {
	if len(pdf) == 0 {
		return nil, errors.New("empty document")
	}
	dir, err := os.MkdirTemp("", "brevet-render-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(in, pdf, 0o600); err != nil {
		return nil, err
	}
	root := filepath.Join(dir, "page")
	if err := p.exec(ctx, in, root); err != nil {
		return nil, err
	}

	f, err := os.Open(root + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm produced no image: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}
	return img, nil
}

func (p *Pdftoppm) exec(ctx context.Context, in, root string) error {
	bin := p.Binary
	if bin == "" {
		bin = "pdftoppm"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("%s not found in PATH", bin)
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 300
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	args := []string{"-png", "-r", strconv.Itoa(dpi), "-f", "1", "-l", "1", "-singlefile", in, root}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("pdftoppm: %w", ctx.Err())
		}
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("pdftoppm: %s", msg)
		}
		return fmt.Errorf("pdftoppm: %w", err)
	}
	return nil
}
