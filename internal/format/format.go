// Package format renders amounts and months for display.
package format

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/hanekasa/internal/calculator"
	"github.com/mmynk/hanekasa/internal/schedule"
)

var printer = message.NewPrinter(language.Turkish)

var monthNames = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// Currency formats amount as Turkish lira.
func Currency(amount float64) string {
	return printer.Sprint(currency.Symbol(currency.TRY.Amount(calculator.Round2(amount))))
}

// SignedCurrency is Currency with an explicit plus sign for positive amounts,
// used for net balances.
func SignedCurrency(amount float64) string {
	if calculator.Round2(amount) > 0 {
		return "+" + Currency(amount)
	}
	return Currency(amount)
}

// MonthName returns the month in Turkish, e.g. "Şubat 2026".
func MonthName(m schedule.Month) string {
	if m.Month < 1 || m.Month > 12 {
		return m.String()
	}
	return fmt.Sprintf("%s %d", monthNames[m.Month-1], m.Year)
}
