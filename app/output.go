package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mancova/domain/report"
	"mancova/internal/errors"
	"mancova/ports"
)

// Output pairs a renderer with its destination. An empty Path means the
// console writer.
type Output struct {
	Renderer ports.RendererPort
	Path     string
}

// RenderOutputs renders every output into memory first, then writes them.
// A render failure therefore writes nothing; file destinations are replaced
// atomically.
func (s *ReportService) RenderOutputs(ctx context.Context, tables []report.Table, outputs []Output, console io.Writer) error {
	rendered := make([][]byte, len(outputs))
	for i, out := range outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := out.Renderer.Render(&buf, tables); err != nil {
			return errors.RenderError(out.Renderer.Format(), err)
		}
		rendered[i] = buf.Bytes()
	}

	for i, out := range outputs {
		if out.Path == "" {
			if _, err := console.Write(rendered[i]); err != nil {
				return errors.RenderError(out.Renderer.Format(), err)
			}
			continue
		}
		if err := writeFileAtomic(out.Path, rendered[i]); err != nil {
			return errors.RenderError(out.Renderer.Format(), err)
		}
		s.logger.Info("wrote %s report to %s (%d bytes)", out.Renderer.Format(), out.Path, len(rendered[i]))
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
