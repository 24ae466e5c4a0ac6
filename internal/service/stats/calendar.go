package stats

import "time"

// DayStart returns local midnight of the calendar day containing t, in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// StartOfWeek returns local midnight of the Monday on or before now.
func StartOfWeek(now time.Time, loc *time.Location) time.Time {
	day := DayStart(now, loc)
	// time.Sunday is 0; shift so that Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	// AddDate keeps wall-clock midnight across DST changes, Add(-24h) does not.
	return day.AddDate(0, 0, -offset)
}

// ParseTimezone parses an IANA zone name, falling back to UTC.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// civilDay is a calendar date stripped of zone and clock, used for gap arithmetic.
type civilDay struct {
	y int
	m time.Month
	d int
}

func civil(t time.Time, loc *time.Location) civilDay {
	y, m, d := t.In(loc).Date()
	return civilDay{y, m, d}
}

// ordinal counts days since an arbitrary epoch; UTC has no DST so the division is exact.
func (c civilDay) ordinal() int {
	return int(time.Date(c.y, c.m, c.d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
