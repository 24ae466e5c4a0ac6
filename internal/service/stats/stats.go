// Package stats derives streak, weekly average and trend figures from journal entries.
// All functions are pure: they read a snapshot and never mutate or persist it.
package stats

import (
	"sort"
	"time"

	"github.com/heartmarshall/howzue/internal/domain"
)

// Streak counts consecutive calendar days with at least one entry, ending today
// or yesterday in loc. Several entries on one day count once. Days after today
// are ignored.
func Streak(entries []domain.JournalEntry, now time.Time, loc *time.Location) int {
	today := civil(now, loc).ordinal()

	seen := make(map[int]struct{}, len(entries))
	days := make([]int, 0, len(entries))
	for _, e := range entries {
		d := civil(e.Date, loc).ordinal()
		if d > today {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.IntSlice(days)))

	if days[0] != today && days[0] != today-1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != 1 {
			break
		}
		streak++
	}
	return streak
}

// WeeklyAverage returns the mean mood value of entries dated on or after the
// start of the current week (Monday, loc). ok is false when no entry qualifies.
func WeeklyAverage(entries []domain.JournalEntry, now time.Time, loc *time.Location) (avg float64, ok bool) {
	start := StartOfWeek(now, loc)

	var sum, n int
	for _, e := range entries {
		if e.Date.Before(start) {
			continue
		}
		sum += e.Mood.Value()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// DayPoint is the aggregate of one calendar day.
type DayPoint struct {
	Day     time.Time   `json:"day"`
	Average float64     `json:"average"`
	Count   int         `json:"count"`
	Mood    domain.Mood `json:"mood"`
}

// DailySeries groups entries by calendar day in loc, oldest day first.
func DailySeries(entries []domain.JournalEntry, loc *time.Location) []DayPoint {
	type acc struct {
		day      time.Time
		sum, cnt int
	}
	byDay := make(map[civilDay]*acc)
	for _, e := range entries {
		key := civil(e.Date, loc)
		a, ok := byDay[key]
		if !ok {
			a = &acc{day: DayStart(e.Date, loc)}
			byDay[key] = a
		}
		a.sum += e.Mood.Value()
		a.cnt++
	}

	series := make([]DayPoint, 0, len(byDay))
	for _, a := range byDay {
		avg := float64(a.sum) / float64(a.cnt)
		series = append(series, DayPoint{
			Day:     a.day,
			Average: avg,
			Count:   a.cnt,
			Mood:    domain.NearestMood(avg),
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Day.Before(series[j].Day) })
	return series
}

// Summary bundles the figures shown on the dashboard.
type Summary struct {
	TotalEntries int `json:"totalEntries"`
	Streak       int `json:"streak"`

	// WeeklyAverage is nil when nothing was logged this week.
	WeeklyAverage *float64    `json:"weeklyAverage"`
	WeeklyMood    domain.Mood `json:"weeklyMood,omitempty"`
}

// Compute derives a Summary from a snapshot of entries.
func Compute(entries []domain.JournalEntry, now time.Time, loc *time.Location) Summary {
	s := Summary{
		TotalEntries: len(entries),
		Streak:       Streak(entries, now, loc),
	}
	if avg, ok := WeeklyAverage(entries, now, loc); ok {
		s.WeeklyAverage = &avg
		s.WeeklyMood = domain.NearestMood(avg)
	}
	return s
}
