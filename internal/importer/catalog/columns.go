package catalog

import "strings"

type field int

const (
	fieldNom field = iota
	fieldDescription
	fieldPrixClient
	fieldPrixFournisseur
	fieldStock
	fieldCategory
)

// headers lists the accepted header spellings per field, lowercased.
var headers = map[field][]string{
	fieldNom:             {"nom", "produit", "désignation"},
	fieldDescription:     {"description"},
	fieldPrixClient:      {"prix client", "prix de vente", "prix"},
	fieldPrixFournisseur: {"prix fournisseur", "prix d'achat"},
	fieldStock:           {"stock", "quantité"},
	fieldCategory:        {"catégorie", "categorie"},
}

var required = []field{fieldNom, fieldPrixClient}

// layout maps each recognised field to its column index.
type layout map[field]int

// detectLayout returns the layout of the first row holding every required
// header, and that row's index.
func detectLayout(rows [][]string) (layout, int, bool) {
	for rowIdx, row := range rows {
		l := make(layout)

		for col, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name == "" {
				continue
			}

			for f, names := range headers {
				if _, seen := l[f]; seen {
					continue
				}

				for _, n := range names {
					if name == n {
						l[f] = col
					}
				}
			}
		}

		if l.complete() {
			return l, rowIdx, true
		}
	}

	return nil, 0, false
}

func (l layout) complete() bool {
	for _, f := range required {
		if _, ok := l[f]; !ok {
			return false
		}
	}

	return true
}

// cell returns the trimmed value of f in row, or "" when the column is absent.
func (l layout) cell(row []string, f field) string {
	idx, ok := l[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
