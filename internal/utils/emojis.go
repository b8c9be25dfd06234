package utils

import (
	"mizman/internal/calendar"
	"mizman/internal/database"
)

func GetPillarName(pillarStr string) string {
	if name, ok := database.PillarNames[database.Pillar(pillarStr)]; ok {
		return name
	}
	return pillarStr
}

func GetPillarEmoji(pillarStr string) string {
	if emoji, ok := database.PillarEmojis[database.Pillar(pillarStr)]; ok {
		return emoji
	}
	return "📌"
}

func GetMarkerEmoji(m calendar.Marker) string {
	switch m {
	case calendar.Complete:
		return "🟢"
	case calendar.Partial:
		return "🟡"
	default:
		return "⚪"
	}
}

func Check(done bool) string {
	if done {
		return "✅"
	}
	return "⬜"
}
