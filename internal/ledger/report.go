package ledger

// Report is the revenue summary over all accounting flux rows.
type Report struct {
	VentesPhysiques      int64 `json:"ventesPhysiques"`
	VentesDigitales      int64 `json:"ventesDigitales"`
	RevenusExceptionnels int64 `json:"revenusExceptionnels"`
	Commissions          int64 `json:"commissions"`
	Total                int64 `json:"total"`
}

// Summarize folds flux rows into a Report. Total is sales plus exceptional
// revenue minus commissions; other flux types do not count.
func Summarize(flux []*Flux) Report {
	var r Report

	for _, f := range flux {
		switch f.TypeFlux {
		case FluxVentePhysique:
			r.VentesPhysiques += f.MontantNet
		case FluxVenteDigitale:
			r.VentesDigitales += f.MontantNet
		case FluxRevenuExceptionnel:
			r.RevenusExceptionnels += f.MontantNet
		case FluxCommission:
			r.Commissions += f.MontantNet
		}
	}

	r.Total = r.VentesPhysiques + r.VentesDigitales + r.RevenusExceptionnels - r.Commissions

	return r
}
