package settings

import (
	"context"
	"log"
	"sync"

	"mizman/internal/records"
	"mizman/internal/spirit"
	"mizman/internal/storage"
)

type Service struct {
	kv storage.KV

	mu     sync.Mutex
	cur    Snapshot
	subs   map[int]chan Snapshot
	nextID int
}

func NewService(kv storage.KV) *Service {
	return &Service{
		kv:   kv,
		cur:  Defaults(),
		subs: make(map[int]chan Snapshot),
	}
}

// Load reads every preference once. Unknown stored values keep their default.
func (s *Service) Load(ctx context.Context) Snapshot {
	snap := Defaults()

	if raw, ok := records.LoadString(ctx, s.kv, records.NationalityKey); ok {
		if n, err := ParseNationality(raw); err == nil {
			snap.Nationality = n
			info, _ := Lookup(n)
			snap.Currency = info.Currency
		} else {
			log.Printf("⚠️ Ignoring stored nationality: %v", err)
		}
	}
	if raw, ok := records.LoadString(ctx, s.kv, records.CurrencyKey); ok {
		if c, err := ParseCurrency(raw); err == nil {
			snap.Currency = c
		} else {
			log.Printf("⚠️ Ignoring stored currency: %v", err)
		}
	}
	if raw, ok := records.LoadString(ctx, s.kv, records.ThemeKey); ok {
		if th, err := ParseTheme(raw); err == nil {
			snap.Theme = th
		}
	}
	if raw, ok := records.LoadString(ctx, s.kv, records.PreferredReligionKey); ok {
		if tr, err := spirit.ParseTradition(raw); err == nil {
			snap.Tradition = tr
		}
	}

	s.mu.Lock()
	s.cur = snap
	s.mu.Unlock()
	return snap
}

func (s *Service) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// SetNationality also switches the display currency to the nationality's own.
func (s *Service) SetNationality(ctx context.Context, n Nationality) (Snapshot, error) {
	info, ok := Lookup(n)
	if !ok {
		return s.Current(), ErrUnknownNationality
	}
	snap := s.update(func(cur *Snapshot) {
		cur.Nationality = n
		cur.Currency = info.Currency
	})
	records.SaveOrLog(ctx, s.kv, records.NationalityKey, string(n))
	records.SaveOrLog(ctx, s.kv, records.CurrencyKey, info.Currency)
	return snap, nil
}

func (s *Service) SetCurrency(ctx context.Context, code string) (Snapshot, error) {
	c, err := ParseCurrency(code)
	if err != nil {
		return s.Current(), err
	}
	snap := s.update(func(cur *Snapshot) { cur.Currency = c })
	records.SaveOrLog(ctx, s.kv, records.CurrencyKey, c)
	return snap, nil
}

func (s *Service) SetTheme(ctx context.Context, th Theme) (Snapshot, error) {
	if th != Light && th != Dark {
		return s.Current(), ErrUnknownTheme
	}
	snap := s.update(func(cur *Snapshot) { cur.Theme = th })
	records.SaveOrLog(ctx, s.kv, records.ThemeKey, string(th))
	return snap, nil
}

func (s *Service) SetTradition(ctx context.Context, tr spirit.Tradition) (Snapshot, error) {
	if !tr.Valid() {
		return s.Current(), spirit.ErrUnknownTradition
	}
	if s.Current().Tradition == tr {
		return s.Current(), nil
	}
	snap := s.update(func(cur *Snapshot) { cur.Tradition = tr })
	records.SaveOrLog(ctx, s.kv, records.PreferredReligionKey, string(tr))
	return snap, nil
}

// Subscribe delivers every new snapshot. A slow subscriber only ever sees
// the latest one. cancel closes the channel.
func (s *Service) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Service) update(mutate func(*Snapshot)) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	mutate(&next)
	s.cur = next
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
	return next
}
