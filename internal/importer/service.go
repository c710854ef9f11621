package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	"github.com/MrJamesThe3rd/mda/internal/importer/catalog"
	"github.com/MrJamesThe3rd/mda/internal/product"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCSV: catalog.NewParser(),
		},
	}
}

// Parse reads a catalog file into product params without writing anything.
func (s *Service) Parse(format Format, r io.Reader) ([]product.CreateParams, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, apperr.Invalidf("unknown catalog format: %s", format)
	}

	params, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s catalog: %w", format, err)
	}

	return params, nil
}
