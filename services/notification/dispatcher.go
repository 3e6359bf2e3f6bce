// File: services/notification/dispatcher.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"wrenchly/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeNotificationSend is the asynq task type carrying a NotificationPayload.
const TypeNotificationSend = "notification:send"

// AsynqDispatcher enqueues notification tasks on Redis via asynq.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// NewAsynqDispatcher wraps an asynq client.
func NewAsynqDispatcher(client *asynq.Client, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, Logger: logger}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, payload models.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	task := asynq.NewTask(TypeNotificationSend, body)
	info, err := d.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	d.Logger.Debug("notification enqueued",
		zap.String("taskId", info.ID),
		zap.String("kind", payload.Kind),
		zap.String("recipient", payload.RecipientEmail))
	return nil
}
