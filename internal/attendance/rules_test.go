package attendance

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func absent(on time.Time) Record {
	return Record{Status: Absent, NotedOn: on}
}

func present(on time.Time) Record {
	return Record{Status: Present, NotedOn: on}
}

func TestBlockedFromVideosThreeAbsences(t *testing.T) {
	history := []Record{
		absent(day(2026, time.March, 2)),
		absent(day(2026, time.March, 12)),
		absent(day(2026, time.March, 25)),
	}
	blocked, reason := BlockedFromVideos(history, 2026, time.March)
	if !blocked {
		t.Fatal("three absences in the month must block")
	}
	if reason == "" {
		t.Fatal("blocked result must carry a reason")
	}
}

func TestBlockedFromVideosPairWithinWeek(t *testing.T) {
	history := []Record{
		absent(day(2026, time.March, 3)),
		absent(day(2026, time.March, 8)),
	}
	if blocked, _ := BlockedFromVideos(history, 2026, time.March); !blocked {
		t.Fatal("two absences five days apart must block")
	}
}

func TestBlockedFromVideosPairWindowInclusive(t *testing.T) {
	history := []Record{
		absent(day(2026, time.March, 2)),
		absent(day(2026, time.March, 9)),
	}
	if blocked, _ := BlockedFromVideos(history, 2026, time.March); !blocked {
		t.Fatal("two absences exactly seven days apart must block")
	}

	history = []Record{
		absent(day(2026, time.March, 2)),
		absent(day(2026, time.March, 10)),
	}
	if blocked, _ := BlockedFromVideos(history, 2026, time.March); blocked {
		t.Fatal("two absences eight days apart must not block")
	}
}

func TestBlockedFromVideosSpreadAbsencesAllowed(t *testing.T) {
	history := []Record{
		absent(day(2026, time.March, 1)),
		absent(day(2026, time.March, 20)),
	}
	if blocked, _ := BlockedFromVideos(history, 2026, time.March); blocked {
		t.Fatal("two absences three weeks apart must not block")
	}
}

func TestBlockedFromVideosScopedToMonth(t *testing.T) {
	// Heavy absence in February is irrelevant to March.
	history := []Record{
		absent(day(2026, time.February, 1)),
		absent(day(2026, time.February, 3)),
		absent(day(2026, time.February, 5)),
		absent(day(2026, time.March, 10)),
	}
	if blocked, _ := BlockedFromVideos(history, 2026, time.March); blocked {
		t.Fatal("absences outside the month must not count")
	}
}

func TestBlockedFromVideosIgnoresPresent(t *testing.T) {
	history := []Record{
		present(day(2026, time.March, 1)),
		present(day(2026, time.March, 3)),
		present(day(2026, time.March, 5)),
		absent(day(2026, time.March, 9)),
	}
	if blocked, _ := BlockedFromVideos(history, 2026, time.March); blocked {
		t.Fatal("present records must not count toward absence limits")
	}
}

func TestBlockedFromVideosEmptyHistory(t *testing.T) {
	if blocked, _ := BlockedFromVideos(nil, 2026, time.March); blocked {
		t.Fatal("empty history must not block")
	}
}
