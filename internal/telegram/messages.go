package telegram

import "log"

// SendMessageOrLogError replies and logs a failed send. A failed reply never
// stops the bot.
func (b *Bot) SendMessageOrLogError(message string) {
	if err := b.SendMessage(message); err != nil {
		log.Printf("❌ Send failed: %v", err)
	}
}

const helpText = `🎯 <b>MizMan</b>

/today - today's check-in
/spirit [date] [activity,...] - devotional checklist
/tradition Muslim|Christian|Hinduism - switch tradition
/gym [date] yes|no - log a workout
/calendar spirit|body [YYYY-MM] - month markers
/streak - current and longest streak
/relapse - reset the streak (asks first)
/screentime, /sync - screen time this week
/assets - list assets
/asset category amount [id] - add or update an asset
/delasset id - remove an asset
/networth - net worth and conversions
/nationality, /currency, /theme - preferences
/dashboard - pillar scores

Dates are YYYY-MM-DD and default to today.
Example: /spirit 2024-01-01 Fajr,Asr`
