package timetable

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseMeetings resolves a section's raw comma-separated time and day lists
// into sessions. The archive data is irregular, so the two lists may have
// mismatched lengths; resolution is tried in order:
//
//  1. Missing times or days: no sessions (TBA, never conflicts).
//  2. A single time window with any number of days: the window applies to
//     every listed day (the common lecture pattern).
//  3. More days than times: the first window covers the first
//     1+(days-times) days, remaining windows map 1:1 to remaining days.
//     This matches the "lecture listed once, lab listed separately" shape
//     of the source data; it is a heuristic, not a verified grammar.
//  4. Otherwise: zip 1:1, truncating to the shorter list.
//
// Windows whose end precedes their start wrap past midnight (+24h).
// Unparseable entries degrade to fewer (or zero) sessions, never an error.
func ParseMeetings(times, days string) []Session {
	if strings.TrimSpace(times) == "" || strings.TrimSpace(days) == "" {
		return nil
	}

	dayList := parseDayList(days)
	timeList := splitAndTrimList(times)
	if len(dayList) == 0 || len(timeList) == 0 {
		return nil
	}

	// Single window applied to every day.
	if len(timeList) == 1 {
		start, end, ok := parseWindow(timeList[0])
		if !ok {
			return nil
		}
		sessions := make([]Session, 0, len(dayList))
		for _, day := range dayList {
			sessions = append(sessions, Session{Day: day, Start: start, End: end})
		}
		return sessions
	}

	// More days than windows: replicate the first window over the extra
	// leading days, then continue 1:1.
	if len(dayList) > len(timeList) {
		extra := len(dayList) - len(timeList)
		sessions := make([]Session, 0, len(dayList))
		dayIdx := 0

		if start, end, ok := parseWindow(timeList[0]); ok {
			for i := 0; i < 1+extra && dayIdx < len(dayList); i++ {
				sessions = append(sessions, Session{Day: dayList[dayIdx], Start: start, End: end})
				dayIdx++
			}
		}
		for i := 1; i < len(timeList) && dayIdx < len(dayList); i++ {
			start, end, ok := parseWindow(timeList[i])
			if !ok {
				continue
			}
			sessions = append(sessions, Session{Day: dayList[dayIdx], Start: start, End: end})
			dayIdx++
		}
		return sessions
	}

	// Equal counts, or more windows than days: zip to the shorter list.
	count := len(dayList)
	if len(timeList) < count {
		count = len(timeList)
	}
	sessions := make([]Session, 0, count)
	for i := 0; i < count; i++ {
		start, end, ok := parseWindow(timeList[i])
		if !ok {
			continue
		}
		sessions = append(sessions, Session{Day: dayList[i], Start: start, End: end})
	}
	return sessions
}

// ParseDay normalizes a single day name (English or Turkish, full or
// abbreviated, any case) to a Day.
func ParseDay(raw string) (Day, bool) {
	day, ok := dayAliases[strings.ToLower(strings.TrimSpace(raw))]
	return day, ok
}

func parseDayList(raw string) []Day {
	parts := strings.Split(raw, ",")
	days := make([]Day, 0, len(parts))
	for _, part := range parts {
		if day, ok := ParseDay(part); ok {
			days = append(days, day)
		}
	}
	return days
}

func splitAndTrimList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseWindow parses "HH:MM/HH:MM" or "HH:MM-HH:MM" into start/end minutes,
// wrapping the end past midnight when it precedes the start.
func parseWindow(raw string) (start, end int, ok bool) {
	sep := "/"
	if !strings.Contains(raw, sep) {
		sep = "-"
	}
	parts := strings.SplitN(raw, sep, 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	start = timeToMinutes(parts[0])
	end = timeToMinutes(parts[1])
	if start < 0 || end < 0 {
		return 0, 0, false
	}
	if end < start {
		end += minutesPerDay
	}
	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

// timeToMinutes parses "HH:MM" into minutes from midnight, -1 when malformed.
func timeToMinutes(raw string) int {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return -1
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return -1
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return -1
	}
	return hours*60 + minutes
}
