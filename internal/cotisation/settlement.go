package cotisation

// Settlement is the split of a liquidated plan's paid amount.
type Settlement struct {
	Penalite    int64
	AvoirClient int64
}

// Split retains a third of montantCotise, rounded down, as penalty and
// returns the rest to the client as avoir.
func Split(montantCotise int64) Settlement {
	penalite := montantCotise / 3

	return Settlement{Penalite: penalite, AvoirClient: montantCotise - penalite}
}
