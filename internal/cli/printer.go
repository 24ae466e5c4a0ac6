package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/heartmarshall/howzue/internal/domain"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)

	moodColors = map[domain.Mood]*color.Color{
		domain.MoodGreat: color.New(color.FgHiGreen, color.Bold),
		domain.MoodGood:  color.New(color.FgGreen),
		domain.MoodOkay:  color.New(color.FgYellow),
		domain.MoodBad:   color.New(color.FgHiRed),
		domain.MoodAwful: color.New(color.FgRed, color.Bold),
	}
)

func moodColor(m domain.Mood) *color.Color {
	if c, ok := moodColors[m]; ok {
		return c
	}
	return color.New()
}

func moodLabel(m domain.Mood) string {
	return m.Emoji() + " " + moodColor(m).Sprint(m.String())
}

func title(w io.Writer, name string, count int) {
	_, _ = color.New(color.Bold, color.Underline).Fprint(w, name)
	_, _ = color.New(color.Faint).Fprintf(w, " - %s\n", plural(count, "item"))
}

func none(w io.Writer) {
	_, _ = color.New(color.Faint, color.Italic).Fprint(w, " none\n\n")
}

func success(w io.Writer, format string, args ...any) {
	_, _ = green.Fprintf(w, format+"\n", args...)
}

func faint(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.Faint).Fprintf(w, format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(w, "warning: "+format+"\n", args...)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func printEntries(w io.Writer, entries []domain.JournalEntry, loc *time.Location) {
	if len(entries) == 0 {
		none(w)
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("DATE"), bold.Sprint("MOOD"), bold.Sprint("TEXT"))
	for _, e := range entries {
		tbl.AddRow(e.Date.In(loc).Format("Mon Jan 2 2006 15:04"), moodLabel(e.Mood), e.Text)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w)
}
