// Package settings holds the process-wide preferences: nationality, display
// currency, theme and preferred tradition. Each is persisted under its own
// key. Readers get immutable snapshots and can subscribe to changes.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"mizman/internal/spirit"
	"mizman/internal/wealth"
)

type Nationality string

const (
	Pakistan Nationality = "Pakistan"
	India    Nationality = "India"
	USA      Nationality = "USA"
	Dubai    Nationality = "Dubai"
)

type NationalityInfo struct {
	Nationality Nationality `json:"nationality"`
	Currency    string      `json:"currency"`
	Symbol      string      `json:"symbol"`
	Flag        string      `json:"flag"`
}

var Nationalities = []NationalityInfo{
	{Nationality: Pakistan, Currency: "PKR", Symbol: "PKR", Flag: "🇵🇰"},
	{Nationality: India, Currency: "INR", Symbol: "₹", Flag: "🇮🇳"},
	{Nationality: USA, Currency: "USD", Symbol: "$", Flag: "🇺🇸"},
	{Nationality: Dubai, Currency: "AED", Symbol: "د.إ", Flag: "🇦🇪"},
}

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var (
	ErrUnknownNationality = errors.New("unknown nationality")
	ErrUnknownCurrency    = errors.New("currency is not offered")
	ErrUnknownTheme       = errors.New("unknown theme")
)

func Lookup(n Nationality) (NationalityInfo, bool) {
	for _, info := range Nationalities {
		if info.Nationality == n {
			return info, true
		}
	}
	return NationalityInfo{}, false
}

func ParseNationality(s string) (Nationality, error) {
	for _, info := range Nationalities {
		if strings.EqualFold(string(info.Nationality), strings.TrimSpace(s)) {
			return info.Nationality, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNationality, s)
}

// Currencies lists the offered display currencies in nationality order.
func Currencies() []string {
	out := make([]string, 0, len(Nationalities))
	for _, info := range Nationalities {
		out = append(out, info.Currency)
	}
	return out
}

// CurrencySymbol prefers the nationality table's symbol over go-money's.
func CurrencySymbol(code string) string {
	for _, info := range Nationalities {
		if strings.EqualFold(info.Currency, code) {
			return info.Symbol
		}
	}
	return wealth.Symbol(code)
}

func ParseCurrency(s string) (string, error) {
	for _, c := range Currencies() {
		if strings.EqualFold(c, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Snapshot is an immutable view of every preference.
type Snapshot struct {
	Nationality Nationality      `json:"nationality"`
	Currency    string           `json:"currency"`
	Theme       Theme            `json:"theme"`
	Tradition   spirit.Tradition `json:"tradition"`
}

func Defaults() Snapshot {
	return Snapshot{
		Nationality: USA,
		Currency:    "USD",
		Theme:       Dark,
		Tradition:   spirit.DefaultTradition,
	}
}

func (s Snapshot) CurrencySymbol() string {
	return CurrencySymbol(s.Currency)
}
