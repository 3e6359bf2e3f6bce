// File: utils/servicearea.go
package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ServiceArea validates customer ZIP codes against the configured
// allow-list. An empty list allows everything, which keeps development
// environments usable.
type ServiceArea struct {
	zips map[string]struct{}
}

// NewServiceArea parses a comma-separated ZIP allow-list.
func NewServiceArea(zipList string) *ServiceArea {
	zips := make(map[string]struct{})
	for _, z := range strings.Split(zipList, ",") {
		z = strings.TrimSpace(z)
		if z != "" {
			zips[z] = struct{}{}
		}
	}
	if len(zips) == 0 {
		zap.L().Warn("no service area configured, allowing all ZIP codes")
	}
	return &ServiceArea{zips: zips}
}

// Validate rejects ZIP codes outside the service area. ZIP+4 input is
// reduced to its five-digit prefix first.
func (s *ServiceArea) Validate(customerZip string) error {
	if customerZip == "" {
		return fmt.Errorf("ZIP code is required")
	}
	cleaned := strings.SplitN(strings.TrimSpace(customerZip), "-", 2)[0]
	if len(s.zips) == 0 {
		return nil
	}
	if _, ok := s.zips[cleaned]; !ok {
		return fmt.Errorf("sorry, we don't currently service the %s area", cleaned)
	}
	return nil
}
