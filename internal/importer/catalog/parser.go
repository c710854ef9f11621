package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	enc "github.com/MrJamesThe3rd/mda/internal/encoding"
	"github.com/MrJamesThe3rd/mda/internal/product"
)

// Parser reads supplier catalog CSV files (semicolon separated, as exported by
// French-locale spreadsheets). The header row may appear anywhere and columns
// may come in any order.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]product.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Invalidf("read csv: %v", err)
	}

	l, headerIdx, ok := detectLayout(rows)
	if !ok {
		return nil, apperr.Invalidf("no catalog header found: expected at least Nom and Prix client columns")
	}

	return parseRows(l, rows[headerIdx+1:], headerIdx+1)
}

// parseRows converts data rows. firstRow is the 0-based file index of rows[0];
// error messages use 1-based file line numbers.
func parseRows(l layout, rows [][]string, firstRow int) ([]product.CreateParams, error) {
	var params []product.CreateParams

	for i, row := range rows {
		rowNum := firstRow + i + 1

		nom := l.cell(row, fieldNom)
		if nom == "" {
			continue
		}

		prixClient, err := parsePrice(l.cell(row, fieldPrixClient))
		if err != nil {
			return nil, apperr.Invalidf("row %d: invalid prix client %q", rowNum, l.cell(row, fieldPrixClient))
		}

		var prixFournisseur int64
		if s := l.cell(row, fieldPrixFournisseur); s != "" {
			prixFournisseur, err = parsePrice(s)
			if err != nil {
				return nil, apperr.Invalidf("row %d: invalid prix fournisseur %q", rowNum, s)
			}
		}

		var stock int
		if s := l.cell(row, fieldStock); s != "" {
			stock, err = strconv.Atoi(spaceStripper.Replace(s))
			if err != nil {
				return nil, apperr.Invalidf("row %d: invalid stock %q", rowNum, s)
			}
		}

		params = append(params, product.CreateParams{
			Nom:             nom,
			Description:     l.cell(row, fieldDescription),
			PrixClient:      prixClient,
			PrixFournisseur: prixFournisseur,
			StockActuel:     stock,
			Category:        l.cell(row, fieldCategory),
		})
	}

	return params, nil
}
