package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/retention/internal/learning"
	"github.com/at-ishikawa/retention/internal/srs"
	"github.com/at-ishikawa/retention/internal/statistics"
)

const timeLayout = "2006-01-02 15:04 MST"

// Printer renders engine results for a terminal.
type Printer struct {
	w      io.Writer
	bold   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		bold:   color.New(color.Bold),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
	}
}

// PrintSchedule prints the outcome of a quality report.
func (p *Printer) PrintSchedule(quality int, result *srs.ScheduleUpdateResult) {
	status := p.green
	if quality < srs.PassingQuality {
		status = p.red
	}
	status.Fprintf(p.w, "%s: quality %d\n", result.ItemID, quality)
	fmt.Fprintf(p.w, "  next review:  %s (in %d days)\n", result.NextDue.Format(timeLayout), result.Interval)
	fmt.Fprintf(p.w, "  easiness:     %.2f\n", result.Easiness)
	fmt.Fprintf(p.w, "  repetitions:  %d\n", result.Repetitions)
}

// PrintItem prints a newly seeded item.
func (p *Printer) PrintItem(it *srs.Item) {
	p.bold.Fprintf(p.w, "%s", it.ID)
	fmt.Fprintf(p.w, " (%s) due %s\n", it.OwnerID, it.NextDue.Format(timeLayout))
}

// PrintDueItems prints due items oldest first.
func (p *Printer) PrintDueItems(ownerID string, items []srs.Item, now time.Time) {
	if len(items) == 0 {
		p.green.Fprintf(p.w, "Nothing due for %s\n", ownerID)
		return
	}
	p.bold.Fprintf(p.w, "%d items due for %s\n", len(items), ownerID)
	for _, it := range items {
		overdue := now.Sub(it.NextDue).Truncate(time.Minute)
		line := fmt.Sprintf("  %s", it.ID)
		if it.ContentRef != "" {
			line += fmt.Sprintf(" %q", it.ContentRef)
		}
		if overdue >= srs.Day {
			p.yellow.Fprintf(p.w, "%s overdue by %d days\n", line, int(overdue/srs.Day))
			continue
		}
		fmt.Fprintln(p.w, line)
	}
}

// PrintStatistics prints an owner summary.
func (p *Printer) PrintStatistics(stats *statistics.OwnerStatistics) {
	p.bold.Fprintf(p.w, "Statistics for %s\n", stats.OwnerID)
	fmt.Fprintf(p.w, "  Items:            %d\n", stats.Total)
	fmt.Fprintf(p.w, "  Due now:          %d\n", stats.DueNow)
	fmt.Fprintf(p.w, "  Never reviewed:   %d\n", stats.NeverReviewed)
	fmt.Fprintf(p.w, "  Learning:         %d\n", stats.Learning)
	fmt.Fprintf(p.w, "  Mature:           %d\n", stats.Mature)
	fmt.Fprintf(p.w, "  Average easiness: %.2f\n", stats.AverageEasiness)
	if stats.NextDue != nil {
		fmt.Fprintf(p.w, "  Next due:         %s\n", stats.NextDue.Format(timeLayout))
	}
}

// PrintReviewHistory prints the reviews of one item, oldest first.
func (p *Printer) PrintReviewHistory(itemID string, logs []learning.ReviewLog) {
	if len(logs) == 0 {
		fmt.Fprintf(p.w, "%s has not been reviewed\n", itemID)
		return
	}
	p.bold.Fprintf(p.w, "%d reviews of %s\n", len(logs), itemID)
	for _, log := range logs {
		status := p.green
		if log.Quality < srs.PassingQuality {
			status = p.red
		}
		status.Fprintf(p.w, "  %s  quality %d", log.ReviewedAt.Format(timeLayout), log.Quality)
		fmt.Fprintf(p.w, "  interval %dd  easiness %.2f\n", log.IntervalDays, log.Easiness)
	}
}
