package models

import "time"

// DayHours is one weekday's working window. A nil entry in the weekly
// schedule means the mechanic does not work that day.
type DayHours struct {
	Start string `bson:"start" json:"start"` // "HH:MM"
	End   string `bson:"end" json:"end"`
}

// Complete reports whether both bounds are present; incomplete entries are
// skipped by the seeder.
func (h *DayHours) Complete() bool {
	return h != nil && h.Start != "" && h.End != ""
}

// WeeklySchedule maps lowercase weekday names to working hours.
type WeeklySchedule map[string]*DayHours

// ForWeekday returns the schedule entry for a Go weekday.
func (s WeeklySchedule) ForWeekday(wd time.Weekday) *DayHours {
	if s == nil {
		return nil
	}
	return s[weekdayKeys[wd]]
}

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// Mechanic is a service provider. Schedule changes only reach the
// availability store through the next seeding run; seeded days are merged
// non-destructively.
type Mechanic struct {
	ID          string         `bson:"id" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Email       string         `bson:"email" json:"email"`
	Phone       string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialties []string       `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Schedule    WeeklySchedule `bson:"schedule" json:"schedule"`
	Active      bool           `bson:"active" json:"active"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}
