package wealth

import "github.com/shopspring/decimal"

// Ledger is the user's asset list. Order carries no meaning.
type Ledger struct {
	assets []Asset
}

func NewLedger(assets []Asset) *Ledger {
	l := &Ledger{}
	for _, a := range assets {
		l.Upsert(a)
	}
	return l
}

// Upsert replaces the asset with the same id or appends a new one.
func (l *Ledger) Upsert(a Asset) {
	for i := range l.assets {
		if l.assets[i].ID == a.ID {
			l.assets[i] = a
			return
		}
	}
	l.assets = append(l.assets, a)
}

// Remove deletes the asset with id. Removing an unknown id is a no-op.
func (l *Ledger) Remove(id string) bool {
	for i := range l.assets {
		if l.assets[i].ID == id {
			l.assets = append(l.assets[:i], l.assets[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Ledger) Find(id string) (Asset, bool) {
	for _, a := range l.assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// Assets returns a copy of the ledger contents.
func (l *Ledger) Assets() []Asset {
	out := make([]Asset, len(l.assets))
	copy(out, l.assets)
	return out
}

type CategoryTotal struct {
	Category Category        `json:"categoryId"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
}

// TotalNetWorth sums every asset.
func TotalNetWorth(assets []Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.Amount)
	}
	return total
}

// ByCategory sums assets per category, in Categories order, keeping only
// categories with a positive total.
func ByCategory(assets []Asset) []CategoryTotal {
	sums := make(map[Category]decimal.Decimal)
	for _, a := range assets {
		sums[a.Category] = sums[a.Category].Add(a.Amount)
	}

	var out []CategoryTotal
	for _, c := range Categories {
		if s, ok := sums[c]; ok && s.IsPositive() {
			out = append(out, CategoryTotal{Category: c, Label: c.Label(), Total: s})
		}
	}
	return out
}

// Shares returns each category's fraction of the total, for the pie chart.
func Shares(totals []CategoryTotal) map[Category]decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	out := make(map[Category]decimal.Decimal, len(totals))
	if sum.IsZero() {
		return out
	}
	for _, t := range totals {
		out[t.Category] = t.Total.Div(sum)
	}
	return out
}
