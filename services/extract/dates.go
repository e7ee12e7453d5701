// Package extract pulls structured reservation fields out of raw
// notification text. Every matcher family is an ordered list of pure
// functions tried first-match-wins, not best-match.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	kanjiDateRe    = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
	slashDateRe    = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	prefixedDateRe = regexp.MustCompile(`日時：(\d{4})年(\d{1,2})月(\d{1,2})日`)
	shortDateRe    = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)
)

type dateMatcher func(text string) (string, bool)

// dateMatchers are tried in priority order; the first hit wins.
var dateMatchers = []dateMatcher{
	matchFullDate(kanjiDateRe),
	matchFullDate(slashDateRe),
	matchFullDate(prefixedDateRe),
	matchShortDate,
}

func matchFullDate(re *regexp.Regexp) dateMatcher {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3])), true
	}
}

// matchShortDate handles MM/DD with the year missing; the current
// calendar year is assumed. The pattern is loose enough to hit the
// digits inside a hyphen-separated time range, so candidates touching a
// ":" or holding an impossible month/day are rejected rather than
// fabricating a date.
func matchShortDate(text string) (string, bool) {
	for _, m := range shortDateRe.FindAllStringSubmatchIndex(text, -1) {
		if touchesColon(text, m[0], m[1]) {
			continue
		}
		month, _ := strconv.Atoi(text[m[2]:m[3]])
		day, _ := strconv.Atoi(text[m[4]:m[5]])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		year := time.Now().Year()
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}
	return "", false
}

func touchesColon(text string, start, end int) bool {
	if start > 0 && text[start-1] == ':' {
		return true
	}
	if end < len(text) && text[end] == ':' {
		return true
	}
	return false
}

// Date returns the first date found in text as YYYY-MM-DD.
func Date(text string) (string, bool) {
	for _, match := range dateMatchers {
		if d, ok := match(text); ok {
			return d, true
		}
	}
	return "", false
}

// HasStructuredDate reports whether a full (year-bearing) date pattern is
// present; used as a confidence signal.
func HasStructuredDate(text string) bool {
	return kanjiDateRe.MatchString(text) || slashDateRe.MatchString(text)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
