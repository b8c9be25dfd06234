package wealth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// RateTable maps a currency code to units per one reference unit (USD).
type RateTable map[string]decimal.Decimal

// DefaultRates is a fixed snapshot; there is no live FX feed.
func DefaultRates() RateTable {
	return RateTable{
		"USD": decimal.NewFromInt(1),
		"PKR": decimal.NewFromInt(280),
		"INR": decimal.NewFromInt(83),
		"AED": decimal.RequireFromString("3.67"),
	}
}

func (r RateTable) rate(code string) (decimal.Decimal, error) {
	rate, ok := r[strings.ToUpper(code)]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return rate, nil
}

// Convert re-expresses total, read in base, in target.
func Convert(total decimal.Decimal, base, target string, rates RateTable) (decimal.Decimal, error) {
	from, err := rates.rate(base)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := rates.rate(target)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Div(from).Mul(to), nil
}

type Conversion struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// Conversions converts total into every target except base itself.
func Conversions(total decimal.Decimal, base string, targets []string, rates RateTable) ([]Conversion, error) {
	var out []Conversion
	for _, code := range targets {
		if strings.EqualFold(code, base) {
			continue
		}
		amount, err := Convert(total, base, code, rates)
		if err != nil {
			return nil, err
		}
		out = append(out, Conversion{Code: code, Amount: amount})
	}
	return out, nil
}

// Symbol is the go-money grapheme for code, or the code when go-money does
// not know it.
func Symbol(code string) string {
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil && c.Grapheme != "" {
		return c.Grapheme
	}
	return strings.ToUpper(code)
}

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders amount as symbol plus a grouped whole number, e.g. "$1,235".
func Format(amount decimal.Decimal, symbol string) string {
	return symbol + printer.Sprintf("%d", amount.Round(0).IntPart())
}
