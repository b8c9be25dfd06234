package wealth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	Stock       Category = "stock"
	Crypto      Category = "crypto"
	RealEstate  Category = "real_estate"
	Gold        Category = "gold"
	Silver      Category = "silver"
	Bonds       Category = "bonds"
	MoneyMarket Category = "money_market"
	Options     Category = "options"
	PensionFund Category = "pension_fund"
	EquityFunds Category = "equity_funds"
)

// Categories is the closed set, in the order breakdowns are reported.
var Categories = []Category{
	Stock, Crypto, RealEstate, Gold, Silver, Bonds, MoneyMarket, Options, PensionFund, EquityFunds,
}

var categoryLabels = map[Category]string{
	Stock:       "Stock",
	Crypto:      "Crypto",
	RealEstate:  "Real Estate",
	Gold:        "Gold",
	Silver:      "Silver",
	Bonds:       "Bonds",
	MoneyMarket: "Money Market Funds",
	Options:     "Options",
	PensionFund: "Pension Fund",
	EquityFunds: "Equity Funds",
}

var (
	ErrUnknownCategory = errors.New("unknown asset category")
	ErrNegativeAmount  = errors.New("asset amount must not be negative")
	ErrMissingID       = errors.New("asset id is required")
)

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts the id ("real_estate") or the label ("Real Estate").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) || strings.EqualFold(c.Label(), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Asset amounts carry no currency: they are read in whatever display
// currency is selected.
type Asset struct {
	ID       string
	Category Category
	Amount   decimal.Decimal
}

func (a Asset) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrMissingID
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, a.Category)
	}
	if a.Amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, a.Amount)
	}
	return nil
}

type assetJSON struct {
	ID         string          `json:"id"`
	CategoryID Category        `json:"categoryId,omitempty"`
	TypeID     Category        `json:"typeId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

// MarshalJSON writes amount as a JSON number, matching the stored app data.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string      `json:"id"`
		CategoryID Category    `json:"categoryId"`
		Amount     json.Number `json:"amount"`
	}{a.ID, a.Category, json.Number(a.Amount.String())})
}

// UnmarshalJSON also reads the older "typeId" field.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var raw assetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cat := raw.CategoryID
	if cat == "" {
		cat = raw.TypeID
	}
	*a = Asset{ID: raw.ID, Category: cat, Amount: raw.Amount}
	return nil
}
