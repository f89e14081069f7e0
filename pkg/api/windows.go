package api

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Maintenance windows use three-letter day prefixes in the order RDS
// reports them.
var weekdayOrdinals = map[string]int{
	"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
}

var (
	backupWindowRe      = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)
	maintenanceWindowRe = regexp.MustCompile(`^([a-z]{3}):(\d{2}):(\d{2})-([a-z]{3}):(\d{2}):(\d{2})$`)
)

const minutesPerWeek = 7 * 24 * 60

// minuteInterval is a half-open [from, to) range on the minute-of-week
// axis. A window that wraps past the week boundary is split into two
// intervals.
type minuteInterval struct {
	from, to int
}

func parseClock(hh, mm string) (int, error) {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 {
		return 0, fmt.Errorf("hour out of range: %s", hh)
	}
	if m > 59 {
		return 0, fmt.Errorf("minute out of range: %s", mm)
	}
	return h*60 + m, nil
}

func intervalsOf(from, to, span int) []minuteInterval {
	if from < to {
		return []minuteInterval{{from, to}}
	}
	// wraps around
	return []minuteInterval{{from, span}, {0, to}}
}

func overlaps(a, b []minuteInterval) bool {
	for _, x := range a {
		for _, y := range b {
			if x.from < y.to && y.from < x.to {
				return true
			}
		}
	}
	return false
}

// ParseBackupWindow validates a "hh24:mi-hh24:mi" window and returns it
// as minute-of-week intervals replicated across every day of the week,
// which is how RDS schedules daily backups.
func ParseBackupWindow(window string) ([]minuteInterval, error) {
	m := backupWindowRe.FindStringSubmatch(window)
	if m == nil {
		return nil, fmt.Errorf("preferredBackupWindow must be in \"hh24:mi-hh24:mi\" format but was: %q", window)
	}
	from, err := parseClock(m[1], m[2])
	if err != nil {
		return nil, fmt.Errorf("invalid preferredBackupWindow %q: %v", window, err)
	}
	to, err := parseClock(m[3], m[4])
	if err != nil {
		return nil, fmt.Errorf("invalid preferredBackupWindow %q: %v", window, err)
	}
	if from == to {
		return nil, fmt.Errorf("preferredBackupWindow start and end must differ: %q", window)
	}

	daily := intervalsOf(from, to, 24*60)
	weekly := []minuteInterval{}
	for day := 0; day < 7; day++ {
		for _, iv := range daily {
			weekly = append(weekly, minuteInterval{day*24*60 + iv.from, day*24*60 + iv.to})
		}
	}
	return weekly, nil
}

// ParseMaintenanceWindow validates a "ddd:hh24:mi-ddd:hh24:mi" window
// and returns it as minute-of-week intervals.
func ParseMaintenanceWindow(window string) ([]minuteInterval, error) {
	m := maintenanceWindowRe.FindStringSubmatch(strings.ToLower(window))
	if m == nil {
		return nil, fmt.Errorf("preferredMaintenanceWindow must be in \"ddd:hh24:mi-ddd:hh24:mi\" format but was: %q", window)
	}
	fromDay, ok := weekdayOrdinals[m[1]]
	if !ok {
		return nil, fmt.Errorf("invalid day %q in preferredMaintenanceWindow %q", m[1], window)
	}
	toDay, ok := weekdayOrdinals[m[4]]
	if !ok {
		return nil, fmt.Errorf("invalid day %q in preferredMaintenanceWindow %q", m[4], window)
	}
	fromClock, err := parseClock(m[2], m[3])
	if err != nil {
		return nil, fmt.Errorf("invalid preferredMaintenanceWindow %q: %v", window, err)
	}
	toClock, err := parseClock(m[5], m[6])
	if err != nil {
		return nil, fmt.Errorf("invalid preferredMaintenanceWindow %q: %v", window, err)
	}

	from := fromDay*24*60 + fromClock
	to := toDay*24*60 + toClock
	if from == to {
		return nil, fmt.Errorf("preferredMaintenanceWindow start and end must differ: %q", window)
	}

	return intervalsOf(from, to, minutesPerWeek), nil
}

// ValidateWindows checks both windows individually and rejects
// schedules where backup and maintenance would run at the same time.
func ValidateWindows(backup, maintenance string) error {
	var backupIvs, maintIvs []minuteInterval
	var err error

	if backup != "" {
		if backupIvs, err = ParseBackupWindow(backup); err != nil {
			return err
		}
	}
	if maintenance != "" {
		if maintIvs, err = ParseMaintenanceWindow(maintenance); err != nil {
			return err
		}
	}

	if overlaps(backupIvs, maintIvs) {
		return fmt.Errorf("preferredBackupWindow %q overlaps preferredMaintenanceWindow %q", backup, maintenance)
	}

	return nil
}
