package journal

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/howzue/internal/domain"
)

const maxTextLength = 10000

// AddEntryInput holds the parameters of a mood log.
type AddEntryInput struct {
	Mood domain.Mood
	Text string
}

// Validate checks mood and text. minText is the required rune count of the trimmed text.
func (i AddEntryInput) Validate(minText int) error {
	var errs []domain.FieldError

	if !i.Mood.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mood", Message: "must be one of great, good, okay, bad, awful"})
	}

	n := utf8.RuneCountInString(strings.TrimSpace(i.Text))
	if n < minText {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("at least %d characters", minText)})
	}
	if n > maxTextLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: fmt.Sprintf("max %d characters", maxTextLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateImport checks a replacement collection. Ids must be unique when set.
func validateImport(entries []domain.JournalEntry) error {
	var errs []domain.FieldError
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		field := fmt.Sprintf("entries[%d]", i)
		if !e.Mood.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".mood", Message: "invalid mood"})
		}
		if e.Date.IsZero() {
			errs = append(errs, domain.FieldError{Field: field + ".date", Message: "required"})
		}
		if utf8.RuneCountInString(e.Text) > maxTextLength {
			errs = append(errs, domain.FieldError{Field: field + ".text", Message: fmt.Sprintf("max %d characters", maxTextLength)})
		}
		if e.ID == "" {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			errs = append(errs, domain.FieldError{Field: field + ".id", Message: "duplicate id"})
		}
		seen[e.ID] = struct{}{}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
