// File: cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"wrenchly/config"
	"wrenchly/models"
	"wrenchly/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sender delivers a rendered notification to the recipient. Email, SMS, or
// a log-only stub in development; the worker does not care which.
type Sender interface {
	Send(ctx context.Context, payload models.NotificationPayload) error
}

// LogSender is the development Sender: it only logs what would be sent.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, payload models.NotificationPayload) error {
	s.Logger.Info("notification (log only)",
		zap.String("kind", payload.Kind),
		zap.String("recipient", payload.RecipientEmail),
		zap.String("booking", payload.BookingID))
	return nil
}

// NewNotificationWorker builds the asynq server consuming the notification
// queue. The caller owns its lifecycle.
func NewNotificationWorker(cfg *config.Config, sender Sender, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotificationSend, handleNotificationTask(sender, logger))
	return srv, mux
}

func handleNotificationTask(sender Sender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			// A malformed payload can never succeed; drop it.
			logger.Error("invalid notification payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %w: %w", err, asynq.SkipRetry)
		}

		if err := sender.Send(ctx, p); err != nil {
			logger.Warn("notification delivery failed, will retry",
				zap.String("kind", p.Kind),
				zap.String("recipient", p.RecipientEmail),
				zap.Error(err))
			return err
		}

		logger.Info("notification delivered",
			zap.String("kind", p.Kind),
			zap.String("recipient", p.RecipientEmail))
		return nil
	}
}
