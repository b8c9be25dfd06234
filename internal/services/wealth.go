package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mizman/internal/records"
	"mizman/internal/settings"
	"mizman/internal/storage"
	"mizman/internal/wealth"
)

type CategoryView struct {
	Category  wealth.Category `json:"categoryId"`
	Label     string          `json:"label"`
	Total     decimal.Decimal `json:"total"`
	Share     decimal.Decimal `json:"share"`
	Formatted string          `json:"formatted"`
}

type ConversionView struct {
	Code      string          `json:"code"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

type WealthSummary struct {
	Currency    string           `json:"currency"`
	Symbol      string           `json:"symbol"`
	Total       decimal.Decimal  `json:"total"`
	Formatted   string           `json:"formatted"`
	ByCategory  []CategoryView   `json:"byCategory"`
	Conversions []ConversionView `json:"conversions"`
}

type WealthService struct {
	kv       storage.KV
	settings *settings.Service
	rates    wealth.RateTable

	mu     sync.Mutex
	ledger *wealth.Ledger
}

func NewWealthService(kv storage.KV, prefs *settings.Service, rates wealth.RateTable) *WealthService {
	if rates == nil {
		rates = wealth.DefaultRates()
	}
	return &WealthService{kv: kv, settings: prefs, rates: rates}
}

// ledgerLocked loads the stored assets once, dropping entries that do not validate.
func (ws *WealthService) ledgerLocked(ctx context.Context) *wealth.Ledger {
	if ws.ledger != nil {
		return ws.ledger
	}
	stored, _ := records.LoadJSON[[]wealth.Asset](ctx, ws.kv, records.WealthDataKey)
	valid := stored[:0]
	for _, a := range stored {
		if err := a.Validate(); err != nil {
			log.Printf("⚠️ Dropping stored asset %q: %v", a.ID, err)
			continue
		}
		valid = append(valid, a)
	}
	ws.ledger = wealth.NewLedger(valid)
	return ws.ledger
}

func (ws *WealthService) Assets(ctx context.Context) []wealth.Asset {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.ledgerLocked(ctx).Assets()
}

// SaveAsset upserts a, assigning a fresh id when a.ID is empty.
func (ws *WealthService) SaveAsset(ctx context.Context, a wealth.Asset) (wealth.Asset, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := a.Validate(); err != nil {
		return wealth.Asset{}, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	l := ws.ledgerLocked(ctx)
	l.Upsert(a)
	records.SaveJSONOrLog(ctx, ws.kv, records.WealthDataKey, l.Assets())
	return a, nil
}

// DeleteAsset removes the asset with id and returns it. Unknown ids are a
// no-op and report false.
func (ws *WealthService) DeleteAsset(ctx context.Context, id string) (wealth.Asset, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	l := ws.ledgerLocked(ctx)
	a, ok := l.Find(id)
	if !ok {
		return wealth.Asset{}, false
	}
	l.Remove(id)
	records.SaveJSONOrLog(ctx, ws.kv, records.WealthDataKey, l.Assets())
	return a, true
}

// Summary reads the ledger in the selected display currency.
func (ws *WealthService) Summary(ctx context.Context) (WealthSummary, error) {
	assets := ws.Assets(ctx)
	snap := ws.settings.Current()
	symbol := snap.CurrencySymbol()

	total := wealth.TotalNetWorth(assets)
	byCat := wealth.ByCategory(assets)
	shares := wealth.Shares(byCat)

	summary := WealthSummary{
		Currency:    snap.Currency,
		Symbol:      symbol,
		Total:       total,
		Formatted:   wealth.Format(total, symbol),
		ByCategory:  make([]CategoryView, 0, len(byCat)),
		Conversions: make([]ConversionView, 0),
	}
	for _, c := range byCat {
		summary.ByCategory = append(summary.ByCategory, CategoryView{
			Category:  c.Category,
			Label:     c.Label,
			Total:     c.Total,
			Share:     shares[c.Category].Round(4),
			Formatted: wealth.Format(c.Total, symbol),
		})
	}

	conversions, err := wealth.Conversions(total, snap.Currency, settings.Currencies(), ws.rates)
	if err != nil {
		return summary, err
	}
	for _, c := range conversions {
		summary.Conversions = append(summary.Conversions, ConversionView{
			Code:      c.Code,
			Amount:    c.Amount.Round(2),
			Formatted: wealth.Format(c.Amount, settings.CurrencySymbol(c.Code)),
		})
	}
	return summary, nil
}
