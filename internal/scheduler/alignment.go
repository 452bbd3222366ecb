package scheduler

import (
	"os"
	"time"
)

// ResolveLocalTimezone returns the runtime's IANA timezone name, or
// "UTC" when it cannot be determined. Never fails.
func ResolveLocalTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}

	name := time.Now().Location().String()
	if name == "" || name == "Local" {
		return "UTC"
	}
	return name
}

// LocalLocation resolves the location used for alignment math. Unlike
// ResolveLocalTimezone it keeps the platform's local zone even when no
// IANA name is known for it.
func LocalLocation() *time.Location {
	if tz := os.Getenv("TZ"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// NextAlignedInstant returns the next instant strictly after now whose
// minute is a multiple of interval and whose second equals offset, in
// now's location. Deterministic and idempotent for a given now.
func NextAlignedInstant(now time.Time, interval, offset time.Duration) time.Time {
	step := int(interval.Minutes())
	if step <= 0 {
		step = 5
	}
	sec := int(offset.Seconds())

	// Round the minute up to the next multiple of step.
	minute := ((now.Minute() + step - 1) / step) * step

	candidate := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(),
		minute, sec, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.Add(time.Duration(step) * time.Minute)
	}
	return candidate
}
