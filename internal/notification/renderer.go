package notification

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer produces user-facing notification text with locale-aware number
// and currency formatting.
type Renderer struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewRenderer creates a renderer for the given BCP 47 locale and ISO 4217
// currency code. Unknown values fall back to en / EUR.
func NewRenderer(locale, currencyCode string) *Renderer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.EUR
	}
	return &Renderer{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}
}

func (r *Renderer) amount(v float64) string {
	return r.printer.Sprint(currency.Symbol(r.unit.Amount(v)))
}

// WinnerSubject is the subject line for a winner notification
func (r *Renderer) WinnerSubject(huntTitle string) string {
	return r.printer.Sprintf("You won the bonus hunt %q!", huntTitle)
}

// WinnerBody renders the message sent to a single winner
func (r *Renderer) WinnerBody(huntTitle string, position int, finalBalance float64) string {
	return r.printer.Sprintf(
		"Congratulations! Your guess on %q finished in position %d. The hunt ended at %s.",
		huntTitle, position, r.amount(finalBalance))
}

// SummarySubject is the subject line for the closing summary
func (r *Renderer) SummarySubject(huntTitle string) string {
	return r.printer.Sprintf("Bonus hunt %q has ended", huntTitle)
}

// SummaryBody renders the closing summary sent to non-winning participants
func (r *Renderer) SummaryBody(huntTitle string, finalBalance float64, winners, participants int) string {
	return r.printer.Sprintf(
		"The bonus hunt %q closed at %s. %d of %d participants took a winning spot. Better luck next time!",
		huntTitle, r.amount(finalBalance), winners, participants)
}
