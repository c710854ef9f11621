package importer

import (
	"io"

	"github.com/MrJamesThe3rd/mda/internal/product"
)

// Format names a supplier catalog file layout.
type Format string

const (
	FormatCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]product.CreateParams, error)
}
