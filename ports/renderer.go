package ports

import (
	"io"

	"mancova/domain/report"
)

// RendererPort turns formatted report tables into one output medium.
// Render must not recompute anything; it only lays out the given cells.
type RendererPort interface {
	// Format is the short name used in configuration ("text", "docx", ...)
	Format() string
	Render(w io.Writer, tables []report.Table) error
}
