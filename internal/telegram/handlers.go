package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"mizman/internal/calendar"
	"mizman/internal/database"
	"mizman/internal/mind"
	"mizman/internal/records"
	"mizman/internal/settings"
	"mizman/internal/spirit"
	"mizman/internal/utils"
	"mizman/internal/wealth"
)

const (
	relapseConfirm     = "relapse_confirm"
	relapseCancel      = "relapse_cancel"
	spiritTogglePrefix = "spirit:"
)

func (b *Bot) today() string {
	return utils.DateIn(b.services.Now(), b.services.Location())
}

// splitDate pops a leading YYYY-MM-DD argument, defaulting to today.
func (b *Bot) splitDate(args []string) (string, []string) {
	if len(args) > 0 && records.ValidDate(args[0]) {
		return args[0], args[1:]
	}
	return b.today(), args
}

func (b *Bot) handleHelp(_ context.Context, _ []string) {
	b.SendMessageOrLogError(helpText)
}

func (b *Bot) handleToday(ctx context.Context, _ []string) {
	if b.services.Notification == nil {
		b.SendMessageOrLogError("❌ Notifications are not configured")
		return
	}
	b.SendMessageOrLogError(b.services.Notification.TodayStatus(ctx))
}

// handleSpirit saves "/spirit [date] a,b,c" directly, or shows a toggle
// checklist when no activities are given.
func (b *Bot) handleSpirit(ctx context.Context, args []string) {
	date, rest := b.splitDate(args)

	if len(rest) == 0 {
		b.sendSpiritChecklist(ctx, date)
		return
	}

	tradition := b.services.Settings.Current().Tradition
	var done []string
	for _, part := range strings.Split(strings.Join(rest, " "), ",") {
		if name := strings.TrimSpace(part); name != "" {
			done = append(done, name)
		}
	}
	rec, err := spirit.NewRecord(tradition, done...)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v\nActivities: %s", err, strings.Join(tradition.Activities(), ", ")))
		return
	}

	markers, err := b.services.Spirit.Save(ctx, date, rec)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ Not saved: %v", err))
		return
	}
	d, total := rec.Count()
	b.SendMessageOrLogError(fmt.Sprintf("%s %s: %d/%d %s",
		utils.GetPillarEmoji(string(database.Spirit)), date, d, total, utils.GetMarkerEmoji(markers[date])))
}

func (b *Bot) sendSpiritChecklist(ctx context.Context, date string) {
	rec, _ := b.services.Spirit.Day(ctx, date)
	if err := b.sendWithKeyboard(spiritChecklistText(date, rec), spiritKeyboard(date, rec)); err != nil {
		log.Printf("❌ Send failed: %v", err)
	}
}

func spiritChecklistText(date string, rec spirit.Record) string {
	done, total := rec.Count()
	return fmt.Sprintf("%s <b>%s</b> (%s) %d/%d\nTap to toggle:",
		utils.GetPillarEmoji(string(database.Spirit)), date, rec.Tradition, done, total)
}

func spiritKeyboard(date string, rec spirit.Record) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, name := range rec.Tradition.Activities() {
		label := fmt.Sprintf("%s %s", utils.Check(rec.Done[i]), name)
		data := fmt.Sprintf("%s%s:%d", spiritTogglePrefix, date, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// parseSpiritToggle reads "spirit:<date>:<index>".
func parseSpiritToggle(data string) (string, int, error) {
	rest := strings.TrimPrefix(data, spiritTogglePrefix)
	date, idxStr, ok := strings.Cut(rest, ":")
	if !ok || !records.ValidDate(date) {
		return "", 0, fmt.Errorf("bad toggle %q", data)
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= spirit.ActivityCount {
		return "", 0, fmt.Errorf("bad toggle %q", data)
	}
	return date, idx, nil
}

func (b *Bot) handleSpiritToggle(ctx context.Context, data string, messageID int) {
	date, idx, err := parseSpiritToggle(data)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return
	}

	rec, _ := b.services.Spirit.Day(ctx, date)
	rec.Done[idx] = !rec.Done[idx]
	if _, err := b.services.Spirit.Save(ctx, date, rec); err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ Not saved: %v", err))
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(b.chatID, messageID, spiritChecklistText(date, rec), spiritKeyboard(date, rec))
	edit.ParseMode = "HTML"
	if _, err := b.bot.Send(edit); err != nil {
		log.Printf("⚠️ Checklist not refreshed: %v", err)
	}
}

func (b *Bot) handleTradition(ctx context.Context, args []string) {
	if len(args) == 0 {
		current := b.services.Settings.Current().Tradition
		var names []string
		for _, t := range spirit.Traditions {
			names = append(names, string(t))
		}
		b.SendMessageOrLogError(fmt.Sprintf("🕊 Tradition: <b>%s</b>\nAvailable: %s", current, strings.Join(names, ", ")))
		return
	}

	tradition, err := spirit.ParseTradition(args[0])
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	if _, err := b.services.Settings.SetTradition(ctx, tradition); err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf("✅ Tradition set to %s\n%s", tradition, strings.Join(tradition.Activities(), ", ")))
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "y", "done", "1", "true":
		return true, true
	case "no", "n", "0", "false":
		return false, true
	}
	return false, false
}

func (b *Bot) handleGym(ctx context.Context, args []string) {
	date, rest := b.splitDate(args)
	workoutDone := true
	if len(rest) > 0 {
		v, ok := parseYesNo(rest[0])
		if !ok {
			b.SendMessageOrLogError("❌ Use /gym [YYYY-MM-DD] yes|no")
			return
		}
		workoutDone = v
	}

	if _, err := b.services.Body.Save(ctx, date, workoutDone); err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ Not saved: %v", err))
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf("%s %s: workout %s",
		utils.GetPillarEmoji(string(database.Body)), date, utils.Check(workoutDone)))
}

func (b *Bot) handleCalendar(ctx context.Context, args []string) {
	pillar := database.Spirit
	month := utils.MonthIn(b.services.Now(), b.services.Location())
	for _, arg := range args {
		switch {
		case utils.ValidMonth(arg):
			month = arg
		case strings.EqualFold(arg, string(database.Body)):
			pillar = database.Body
		case strings.EqualFold(arg, string(database.Spirit)):
			pillar = database.Spirit
		default:
			b.SendMessageOrLogError("❌ Use /calendar spirit|body [YYYY-MM]")
			return
		}
	}

	var markers map[string]calendar.Marker
	if pillar == database.Body {
		markers = b.services.Body.MonthMarkers(ctx, month)
	} else {
		markers = b.services.Spirit.MonthMarkers(ctx, month)
	}
	b.SendMessageOrLogError(formatCalendar(pillar, month, markers))
}

func formatCalendar(pillar database.Pillar, month string, markers map[string]calendar.Marker) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf("<b>%s %s</b>\n\n", utils.GetPillarName(string(pillar)), month))

	if len(markers) == 0 {
		message.WriteString("📭 Nothing logged this month")
		return message.String()
	}

	dates := make([]string, 0, len(markers))
	for date := range markers {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		message.WriteString(fmt.Sprintf("%s %s\n", utils.GetMarkerEmoji(markers[date]), date))
	}
	return message.String()
}

func (b *Bot) handleStreak(ctx context.Context, _ []string) {
	view := b.services.Mind.Streak(ctx)
	b.SendMessageOrLogError(fmt.Sprintf("%s <b>Streak</b>\n\nCurrent: %d days\nLongest: %d days\nSince: %s",
		utils.GetPillarEmoji(string(database.Mind)), view.Current, view.Longest,
		utils.DateIn(view.StartedAt, b.services.Location())))
}

func (b *Bot) handleRelapse(_ context.Context, _ []string) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", relapseConfirm),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", relapseCancel),
		),
	)
	if err := b.sendWithKeyboard("⚠️ Reset your streak to 0? The longest streak is kept.", keyboard); err != nil {
		log.Printf("❌ Send failed: %v", err)
	}
}

func (b *Bot) handleRelapseConfirm(ctx context.Context, messageID int) {
	view, err := b.services.Mind.Reset(ctx, mind.Confirmed)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	b.safeDeleteMessage(messageID)
	b.SendMessageOrLogError(fmt.Sprintf("🔄 Streak reset. Longest stays at %d days. Day one starts now.", view.Longest))
}

func (b *Bot) handleScreenTime(ctx context.Context, _ []string) {
	view := b.services.Mind.ScreenTime(ctx)
	b.SendMessageOrLogError(formatScreenTime(view.Labels, view.Hours))
}

func (b *Bot) handleSyncScreenTime(ctx context.Context, _ []string) {
	view := b.services.Mind.SyncScreenTime(ctx)
	b.SendMessageOrLogError("🔄 Synced\n\n" + formatScreenTime(view.Labels, view.Hours))
}

func formatScreenTime(labels []string, hours []float64) string {
	var message strings.Builder
	message.WriteString("📱 <b>Screen time</b>\n\n")
	var sum float64
	for i, h := range hours {
		sum += h
		bar := int(max(0, min(h, mind.MaxDayHours)))
		message.WriteString(fmt.Sprintf("%s %s %.0fh\n", labels[i], strings.Repeat("▇", bar), h))
	}
	if len(hours) > 0 {
		message.WriteString(fmt.Sprintf("\nAverage: %.1fh", sum/float64(len(hours))))
	}
	return message.String()
}

func (b *Bot) handleAssets(ctx context.Context, _ []string) {
	assets := b.services.Wealth.Assets(ctx)
	if len(assets) == 0 {
		b.SendMessageOrLogError("📭 No assets yet. Add one with /asset gold 1000")
		return
	}

	symbol := b.services.Settings.Current().CurrencySymbol()
	var message strings.Builder
	message.WriteString(fmt.Sprintf("%s <b>Assets</b>\n\n", utils.GetPillarEmoji(string(database.Wealth))))
	for _, a := range assets {
		message.WriteString(fmt.Sprintf("• %s: %s\n  <code>%s</code>\n", a.Category.Label(), wealth.Format(a.Amount, symbol), a.ID))
	}
	b.SendMessageOrLogError(message.String())
}

// parseAssetArgs reads "<category> <amount> [id]".
func parseAssetArgs(args []string) (wealth.Asset, error) {
	if len(args) < 2 {
		return wealth.Asset{}, errors.New("use /asset category amount [id]")
	}
	category, err := wealth.ParseCategory(args[0])
	if err != nil {
		return wealth.Asset{}, err
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(args[1], ",", ""))
	if err != nil {
		return wealth.Asset{}, fmt.Errorf("invalid amount %q", args[1])
	}
	a := wealth.Asset{Category: category, Amount: amount}
	if len(args) > 2 {
		a.ID = args[2]
	}
	return a, nil
}

func (b *Bot) handleAddAsset(ctx context.Context, args []string) {
	a, err := parseAssetArgs(args)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	saved, err := b.services.Wealth.SaveAsset(ctx, a)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	symbol := b.services.Settings.Current().CurrencySymbol()
	b.SendMessageOrLogError(fmt.Sprintf("✅ %s %s saved\n<code>%s</code>", saved.Category.Label(), wealth.Format(saved.Amount, symbol), saved.ID))
}

func (b *Bot) handleDeleteAsset(ctx context.Context, args []string) {
	if len(args) != 1 {
		b.SendMessageOrLogError("❌ Use /delasset id")
		return
	}
	a, ok := b.services.Wealth.DeleteAsset(ctx, args[0])
	if !ok {
		b.SendMessageOrLogError("📭 No asset with that id")
		return
	}
	symbol := b.services.Settings.Current().CurrencySymbol()
	b.SendMessageOrLogError(fmt.Sprintf("🗑 %s %s removed", a.Category.Label(), wealth.Format(a.Amount, symbol)))
}

func (b *Bot) handleNetWorth(ctx context.Context, _ []string) {
	summary, err := b.services.Wealth.Summary(ctx)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("%s <b>Net worth: %s</b>\n\n", utils.GetPillarEmoji(string(database.Wealth)), summary.Formatted))
	for _, c := range summary.ByCategory {
		message.WriteString(fmt.Sprintf("• %s: %s (%s%%)\n", c.Label, c.Formatted, c.Share.Mul(decimal.NewFromInt(100)).StringFixed(1)))
	}
	if len(summary.Conversions) > 0 {
		message.WriteString("\n<b>In other currencies</b>\n")
		for _, c := range summary.Conversions {
			message.WriteString(fmt.Sprintf("%s %s\n", c.Code, c.Formatted))
		}
	}
	b.SendMessageOrLogError(message.String())
}

func (b *Bot) handleNationality(ctx context.Context, args []string) {
	if len(args) == 0 {
		var message strings.Builder
		current := b.services.Settings.Current()
		message.WriteString(fmt.Sprintf("🌍 Nationality: <b>%s</b> (%s)\n\n", current.Nationality, current.Currency))
		for _, info := range settings.Nationalities {
			message.WriteString(fmt.Sprintf("%s %s %s\n", info.Flag, info.Nationality, info.Currency))
		}
		b.SendMessageOrLogError(message.String())
		return
	}

	n, err := settings.ParseNationality(strings.Join(args, " "))
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	snap, err := b.services.Settings.SetNationality(ctx, n)
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf("✅ %s, amounts now shown in %s", snap.Nationality, snap.Currency))
}

func (b *Bot) handleCurrency(ctx context.Context, args []string) {
	if len(args) != 1 {
		b.SendMessageOrLogError(fmt.Sprintf("💱 Currency: <b>%s</b>\nAvailable: %s",
			b.services.Settings.Current().Currency, strings.Join(settings.Currencies(), ", ")))
		return
	}
	snap, err := b.services.Settings.SetCurrency(ctx, args[0])
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf("✅ Amounts now shown in %s", snap.Currency))
}

func (b *Bot) handleTheme(ctx context.Context, args []string) {
	if len(args) != 1 {
		b.SendMessageOrLogError(fmt.Sprintf("🎨 Theme: <b>%s</b>. Use /theme light|dark", b.services.Settings.Current().Theme))
		return
	}
	th, err := settings.ParseTheme(args[0])
	if err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	if _, err := b.services.Settings.SetTheme(ctx, th); err != nil {
		b.SendMessageOrLogError(fmt.Sprintf("❌ %v", err))
		return
	}
	b.SendMessageOrLogError(fmt.Sprintf("✅ Theme set to %s", th))
}

func (b *Bot) handleDashboard(ctx context.Context, _ []string) {
	d := b.services.Analytics.Dashboard(ctx)

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📊 <b>Dashboard %s</b>\n\nMaster score: <b>%d</b>\n\n", d.Date, d.Master))
	for _, p := range d.Pillars {
		message.WriteString(fmt.Sprintf("%s: %d%%\n", p.Name, p.Score))
	}
	message.WriteString("\n" + d.Insights)
	b.SendMessageOrLogError(message.String())
}
