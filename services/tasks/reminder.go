package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"karigar/config"
	"karigar/models"
	"karigar/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask wraps a reminder payload into a task scheduled for fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues booking reminders on the Redis-backed queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// NewAsynqReminderScheduler builds the scheduler and its queue client from the
// app config.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleBookingReminders queues one reminder each for the customer and the
// provider of a confirmed booking, firing a configurable lead time before the
// confirmed slot. Slots too close for the lead time get no reminder.
func (s *AsynqReminderScheduler) ScheduleBookingReminders(b *models.Booking) error {
	if s.Client == nil {
		return fmt.Errorf("reminder queue client is not initialized")
	}

	slot, err := time.ParseInLocation("2006-01-02 15:04",
		b.ConfirmedDate+" "+b.ConfirmedTime, time.Local)
	if err != nil {
		return fmt.Errorf("booking %s has an unparseable confirmed slot: %w", b.ID, err)
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	fireAt := slot.Add(-lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payloads := []models.ReminderPayload{
		{
			BookingID:   b.ID,
			Target:      "customer",
			RecipientID: b.CustomerID,
			Title:       "Upcoming booking",
			Body:        fmt.Sprintf("Your booking is at %s on %s.", b.ConfirmedTime, b.ConfirmedDate),
			FireDate:    fireAt.Format(time.RFC3339),
		},
		{
			BookingID:   b.ID,
			Target:      "provider",
			RecipientID: b.ProviderID,
			Title:       "Upcoming job",
			Body:        fmt.Sprintf("You have a job at %s on %s.", b.ConfirmedTime, b.ConfirmedDate),
			FireDate:    fireAt.Format(time.RFC3339),
		},
	}

	for _, p := range payloads {
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder for %s: %w", p.Target, err)
		}
		utils.GetLogger().Debug("reminder enqueued",
			zap.String("bookingID", p.BookingID),
			zap.String("target", p.Target),
			zap.String("fireDate", p.FireDate))
	}
	return nil
}
