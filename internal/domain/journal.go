package domain

import "time"

// JournalEntry is a single mood log with optional free text.
type JournalEntry struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Mood Mood      `json:"mood"`
	Text string    `json:"text"`
}

// SameDayPolicy decides what a second log on the same calendar day does.
type SameDayPolicy string

const (
	// SameDayOverwrite replaces mood and text of the day's existing entry, keeping its id and date.
	SameDayOverwrite SameDayPolicy = "overwrite"
	// SameDayAppend always adds a new entry.
	SameDayAppend SameDayPolicy = "append"
)

func (p SameDayPolicy) String() string { return string(p) }

func (p SameDayPolicy) IsValid() bool {
	switch p {
	case SameDayOverwrite, SameDayAppend:
		return true
	}
	return false
}
