package domain

import (
	"fmt"
	"strings"
)

// Duty status a driver occupies at any instant.
// The four values are the closed set used by hours-of-service record keeping.
type Status string

const (
	StatusOffDuty      Status = "off_duty"
	StatusSleeperBerth Status = "sleeper_berth"
	StatusDriving      Status = "driving"
	StatusOnDuty       Status = "on_duty"
)

// AllStatuses lists every duty status in paper-log grid row order.
var AllStatuses = [4]Status{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDuty}

// Label returns the human-readable name printed on the log grid.
func (s Status) Label() string {
	switch s {
	case StatusOffDuty:
		return "Off Duty"
	case StatusSleeperBerth:
		return "Sleeper Berth"
	case StatusDriving:
		return "Driving"
	case StatusOnDuty:
		return "On Duty"
	}
	return string(s)
}

// ParseStatus maps an upstream status string onto the closed enumeration.
// Matching is case-insensitive and accepts both the snake_case wire values
// and the spaced/CamelCase spellings older log exports use.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off_duty", "offduty", "off duty":
		return StatusOffDuty, nil
	case "sleeper_berth", "sleeperberth", "sleeper berth":
		return StatusSleeperBerth, nil
	case "driving":
		return StatusDriving, nil
	case "on_duty", "onduty", "on duty":
		return StatusOnDuty, nil
	}
	return "", fmt.Errorf("parse status: unrecognized duty status %q", s)
}
