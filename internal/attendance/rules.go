package attendance

import "time"

// Absence thresholds for the video library. A student loses access for a
// calendar month when they miss too much of it.
const (
	monthlyAbsenceLimit = 3
	pairWindow          = 7 * 24 * time.Hour
)

// BlockedFromVideos reports whether a student's history blocks video access
// for the given calendar month: three or more absences in that month, or two
// absences at most seven days apart inside it (the window is inclusive, so
// Monday-to-Monday counts). Pure; callers pass the fetched history.
func BlockedFromVideos(history []Record, year int, month time.Month) (bool, string) {
	var days []time.Time
	for _, rec := range history {
		if rec.Status != Absent {
			continue
		}
		if rec.NotedOn.Year() == year && rec.NotedOn.Month() == month {
			days = append(days, rec.NotedOn)
		}
	}
	if len(days) >= monthlyAbsenceLimit {
		return true, "absent three or more lessons this month"
	}
	for i := 0; i < len(days); i++ {
		for j := i + 1; j < len(days); j++ {
			d := days[i].Sub(days[j])
			if d < 0 {
				d = -d
			}
			if d <= pairWindow {
				return true, "two absences within seven days this month"
			}
		}
	}
	return false, ""
}
