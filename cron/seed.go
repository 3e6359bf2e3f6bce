// File: cron/seed.go
package cron

import (
	"fmt"
	"net/http"
	"time"

	"wrenchly/middleware"
	"wrenchly/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartSeedScheduler runs the weekly availability seed on the given cron
// spec (default: Sunday 18:00). It calls the server's internal trigger
// endpoint with a short-lived signed token, so the run goes through the same
// code path as a manual trigger.
func StartSeedScheduler(spec, appPort string, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := triggerSeed(appPort); err != nil {
			logger.Error("scheduled availability seed failed", zap.Error(err))
			return
		}
		logger.Info("scheduled availability seed triggered")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid seed cron spec %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

func triggerSeed(appPort string) error {
	token, err := utils.GenerateToken(middleware.ScheduledTriggerSubject, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to sign trigger token: %w", err)
	}

	url := fmt.Sprintf("http://127.0.0.1:%s/internal/availability/seed", appPort)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("seed trigger request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("seed trigger returned status %d", resp.StatusCode)
	}
	return nil
}
