package domain

import (
	"math"
	"strings"
)

// Mood is the self-reported mood of a journal entry.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
	MoodAwful Mood = "awful"
)

// moods is the canonical enumeration order. NearestMood relies on it for tie-breaks.
var moods = [...]Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodAwful}

// Moods returns all moods in enumeration order (great first).
func Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods[:])
	return out
}

func (m Mood) String() string { return string(m) }

func (m Mood) IsValid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodBad, MoodAwful:
		return true
	}
	return false
}

// Value returns the ordinal value of the mood: great=5 ... awful=1.
// Invalid moods have value 0.
func (m Mood) Value() int {
	switch m {
	case MoodGreat:
		return 5
	case MoodGood:
		return 4
	case MoodOkay:
		return 3
	case MoodBad:
		return 2
	case MoodAwful:
		return 1
	}
	return 0
}

// Emoji returns the display glyph for the mood.
func (m Mood) Emoji() string {
	switch m {
	case MoodGreat:
		return "😄"
	case MoodGood:
		return "😊"
	case MoodOkay:
		return "😐"
	case MoodBad:
		return "😟"
	case MoodAwful:
		return "😞"
	}
	return "?"
}

// ParseMood parses a mood name case-insensitively.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// NearestMood returns the mood whose value is closest to avg.
// On equal distance the mood that comes first in enumeration order wins,
// so 3.5 resolves to good rather than okay.
func NearestMood(avg float64) Mood {
	best := moods[0]
	bestDist := math.Abs(float64(best.Value()) - avg)
	for _, m := range moods[1:] {
		d := math.Abs(float64(m.Value()) - avg)
		if d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}
