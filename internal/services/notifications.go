package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mizman/internal/database"
	"mizman/internal/utils"
)

// NotificationSender delivers a message to the user.
type NotificationSender interface {
	SendMessage(text string) error
}

type NotificationService struct {
	sender NotificationSender
	sm     *ServiceManager
}

func NewNotificationService(sender NotificationSender, sm *ServiceManager) *NotificationService {
	return &NotificationService{sender: sender, sm: sm}
}

// TodayStatus renders the check-in state for today.
func (ns *NotificationService) TodayStatus(ctx context.Context) string {
	now := ns.sm.Now()
	loc := ns.sm.Location()
	today := utils.DateIn(now, loc)

	var message strings.Builder
	message.WriteString(fmt.Sprintf("📅 <b>%s</b>\n%s\n\n", today, utils.GetTimezoneInfo(now, loc)))

	rec, _ := ns.sm.Spirit.Day(ctx, today)
	done, total := rec.Count()
	message.WriteString(fmt.Sprintf("%s %s (%s): %d/%d\n",
		utils.GetPillarEmoji(string(database.Spirit)), "Spirit", rec.Tradition, done, total))
	for i, name := range rec.Tradition.Activities() {
		message.WriteString(fmt.Sprintf("   %s %s\n", utils.Check(rec.Done[i]), name))
	}

	gym, _ := ns.sm.Body.Day(ctx, today)
	message.WriteString(fmt.Sprintf("%s Workout: %s\n",
		utils.GetPillarEmoji(string(database.Body)), utils.Check(gym.WorkoutDone)))

	streak := ns.sm.Mind.Streak(ctx)
	message.WriteString(fmt.Sprintf("%s Streak: %d days (best %d)\n",
		utils.GetPillarEmoji(string(database.Mind)), streak.Current, streak.Longest))

	return message.String()
}

// SendDailyReminder is run by cron.
func (ns *NotificationService) SendDailyReminder(ctx context.Context) {
	message := "🔔 <b>Daily check-in</b>\n\n" + ns.TodayStatus(ctx) +
		"\nLog today with /spirit and /gym."
	if err := ns.sender.SendMessage(message); err != nil {
		log.Printf("⚠️ Reminder not sent: %v", err)
		return
	}
	log.Printf("✅ Reminder sent")
}
