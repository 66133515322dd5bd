package plan

import (
	"regexp"
	"strings"
	"time"
)

// Temporal FOR-clauses: these are not valid vitess SQL grammar,
// so callers strip them out of the query text with StripTemporalClause
// before the statement is parsed, and BuildPlan applies the range as a
// Scan node's start_date/end_date.

var (
	forTodayRe     = regexp.MustCompile(`(?i)\s+FOR\s+TODAY\b`)
	forYesterdayRe = regexp.MustCompile(`(?i)\s+FOR\s+YESTERDAY\b`)
	forAsOfRe      = regexp.MustCompile(`(?i)\s+FOR\s+DATES\s+AS\s+OF\s+'([^']+)'`)
	forBetweenRe   = regexp.MustCompile(`(?i)\s+FOR\s+DATES\s+BETWEEN\s+'([^']+)'\s+AND\s+'([^']+)'`)
)

// TemporalRange is the (start, end) date window a FOR clause resolves to.
type TemporalRange struct {
	Start *time.Time
	End   *time.Time
}

// StripTemporalClause removes a FOR-clause from query text if present and
// returns the remaining SQL plus the date range it described. now is
// injected so FOR TODAY/FOR YESTERDAY are deterministic and testable.
func StripTemporalClause(query string, now time.Time) (string, TemporalRange) {
	if m := forBetweenRe.FindStringSubmatch(query); m != nil {
		start, errS := time.Parse("2006-01-02", m[1])
		end, errE := time.Parse("2006-01-02", m[2])
		clean := forBetweenRe.ReplaceAllString(query, "")
		if errS != nil || errE != nil {
			return strings.TrimSpace(clean), TemporalRange{}
		}
		return strings.TrimSpace(clean), TemporalRange{Start: &start, End: &end}
	}
	if m := forAsOfRe.FindStringSubmatch(query); m != nil {
		asOf, err := time.Parse("2006-01-02", m[1])
		clean := forAsOfRe.ReplaceAllString(query, "")
		if err != nil {
			return strings.TrimSpace(clean), TemporalRange{}
		}
		return strings.TrimSpace(clean), TemporalRange{Start: &asOf, End: &asOf}
	}
	if forTodayRe.MatchString(query) {
		start := startOfDay(now)
		end := start.Add(24 * time.Hour)
		clean := forTodayRe.ReplaceAllString(query, "")
		return strings.TrimSpace(clean), TemporalRange{Start: &start, End: &end}
	}
	if forYesterdayRe.MatchString(query) {
		start := startOfDay(now).Add(-24 * time.Hour)
		end := startOfDay(now)
		clean := forYesterdayRe.ReplaceAllString(query, "")
		return strings.TrimSpace(clean), TemporalRange{Start: &start, End: &end}
	}
	return query, TemporalRange{}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
