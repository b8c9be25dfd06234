package records

// Namespaced keys, kept identical to the ones the mobile app wrote so an
// exported AsyncStorage dump can be imported as-is.
const (
	GymDataKey           = "@mizman_gym_data"
	PrayerDataKey        = "@mizman_prayer_data"
	StreakStartKey       = "@mizman_streak_start_date"
	LongestStreakKey     = "@mizman_longest_streak"
	ScreenTimeDataKey    = "@mizman_screen_time_data"
	WealthDataKey        = "@mizman_wealth_data"
	NationalityKey       = "@mizman_nationality"
	CurrencyKey          = "@mizman_currency_preference"
	PreferredReligionKey = "@mizman_preferred_religion"
	ThemeKey             = "@mizman_theme"
)
