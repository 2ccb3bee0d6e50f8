package duetime

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/the-moog/trac-ticketreminder/internal/utils"
)

// Remaining is the presentation data for one reminder relative to a current
// moment. When Pending is true the due instant has already been reached and
// In/DueDate are empty.
type Remaining struct {
	Pending bool
	In      string // humanized distance, e.g. "3 days"
	DueDate string // canonical formatted due date
}

// Until computes the presentation data for a due instant. Pure function of
// (now, due).
func Until(now, due time.Time) Remaining {
	if !now.Before(due) {
		return Remaining{Pending: true}
	}
	return Remaining{
		In:      strings.TrimSpace(humanize.RelTime(now, due, "", "")),
		DueDate: utils.FormatDate(due),
	}
}

// Ago renders the humanized distance from an origin instant back to now,
// e.g. "5 minutes" for a reminder created five minutes ago.
func Ago(now, origin time.Time) string {
	return strings.TrimSpace(humanize.RelTime(origin, now, "", ""))
}
