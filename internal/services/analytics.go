package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"mizman/internal/database"
	"mizman/internal/utils"
)

const scoreWindowDays = 7

type PillarScore struct {
	Pillar database.Pillar `json:"pillar"`
	Name   string          `json:"name"`
	Score  int             `json:"score"`
}

type Dashboard struct {
	Date     string        `json:"date"`
	Master   int           `json:"masterScore"`
	Pillars  []PillarScore `json:"pillars"`
	Insights string        `json:"insights"`
}

// AnalyticsService scores each pillar 0-100 over the last seven days.
type AnalyticsService struct {
	sm *ServiceManager
}

func NewAnalyticsService(sm *ServiceManager) *AnalyticsService {
	return &AnalyticsService{sm: sm}
}

func (as *AnalyticsService) Dashboard(ctx context.Context) Dashboard {
	now := as.sm.Now()
	loc := as.sm.Location()
	days := utils.LastDays(now, loc, scoreWindowDays)

	scores := map[database.Pillar]float64{}

	done, total := as.sm.Spirit.DoneBetween(ctx, days)
	scores[database.Spirit] = ratio(done, total)

	workouts := as.sm.Body.WorkoutsBetween(ctx, days[0], days[len(days)-1])
	scores[database.Body] = ratio(workouts, scoreWindowDays)

	streak := as.sm.Mind.Streak(ctx)
	scores[database.Mind] = ratio(min(streak.Current, scoreWindowDays), scoreWindowDays)

	if len(as.sm.Wealth.Assets(ctx)) > 0 {
		scores[database.Wealth] = 100
	}

	d := Dashboard{Date: utils.DateIn(now, loc)}
	var sum float64
	for _, p := range database.Pillars {
		s := scores[p]
		sum += s
		d.Pillars = append(d.Pillars, PillarScore{Pillar: p, Name: database.PillarNames[p], Score: int(math.Round(s))})
	}
	d.Master = int(math.Round(sum / float64(len(database.Pillars))))
	d.Insights = as.generateInsights(d)
	return d
}

func ratio(n, of int) float64 {
	if of <= 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}

func (as *AnalyticsService) generateInsights(d Dashboard) string {
	var insights []string

	switch {
	case d.Master < 50:
		insights = append(insights, "💪 Pick one pillar and show up for it tomorrow")
	case d.Master > 80:
		insights = append(insights, "🎯 Strong week across the board")
	default:
		insights = append(insights, "📈 Good progress, there is room to grow")
	}

	for _, p := range d.Pillars {
		if p.Score < 40 {
			insights = append(insights, fmt.Sprintf("⚠️ %s needs attention: %d%%", p.Name, p.Score))
		}
	}

	return strings.Join(insights, "\n")
}
