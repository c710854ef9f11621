package ledger

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// FormatFCFA renders an amount with French digit grouping, e.g. "150 000 FCFA".
func FormatFCFA(amount int64) string {
	return printer.Sprintf("%d FCFA", amount)
}
