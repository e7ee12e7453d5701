package extract

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// The separators 〜 ～ ~ - are alternatives of one pattern family.
	timeRangeRe  = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*[〜～~-]\s*(\d{1,2}):(\d{2})`)
	singleTimeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// TimeRange returns the first start/end pair found in text as HH:MM values.
func TimeRange(text string) (start, end string, ok bool) {
	m := timeRangeRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return pad2(m[1]) + ":" + m[2], pad2(m[3]) + ":" + m[4], true
}

// SingleTime returns the first bare HH:MM found in text. Used when a
// message lists only one endpoint.
func SingleTime(text string) (string, bool) {
	m := singleTimeRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return pad2(m[1]) + ":" + m[2], true
}

// HasStructuredTime reports whether a full time range is present; used as
// a confidence signal.
func HasStructuredTime(text string) bool {
	return timeRangeRe.MatchString(text)
}

// SynthesizeEnd derives an end time 90 minutes after start, carrying
// minute overflow into the hour. When allowOvernight is false an end past
// midnight is clamped to 23:59; otherwise it wraps modulo 24 hours.
func SynthesizeEnd(start string, allowOvernight bool) (string, bool) {
	m := singleTimeRe.FindStringSubmatch(start)
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	hour++
	minute += 30
	if minute >= 60 {
		hour++
		minute -= 60
	}
	if hour >= 24 {
		if !allowOvernight {
			return "23:59", true
		}
		hour -= 24
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
