package notification

import (
	"context"

	"karigar/utils"

	"go.uber.org/zap"
)

// NotificationService delivers reminder and lifecycle notifications to users.
type NotificationService interface {
	SendPushNotification(ctx context.Context, recipientID, title, body string, data map[string]string) error
}

// LogNotificationService records notifications in the application log. It
// stands in until a push delivery channel is wired up.
type LogNotificationService struct{}

func (LogNotificationService) SendPushNotification(ctx context.Context, recipientID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("notification",
		zap.String("recipientID", recipientID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}
