package database

type Pillar string

const (
	Spirit Pillar = "spirit"
	Body   Pillar = "body"
	Mind   Pillar = "mind"
	Wealth Pillar = "wealth"
)

// Pillars in dashboard order.
var Pillars = []Pillar{Spirit, Body, Mind, Wealth}

var PillarNames = map[Pillar]string{
	Spirit: "🌙 Spirit",
	Body:   "🏋️ Body",
	Mind:   "🧠 Mind",
	Wealth: "💰 Wealth",
}

var PillarEmojis = map[Pillar]string{
	Spirit: "🌙",
	Body:   "🏋️",
	Mind:   "🧠",
	Wealth: "💰",
}
