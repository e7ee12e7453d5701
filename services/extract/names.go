package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"slotboard/utils"
)

const bookingAnchorLine = "より、ご予約をいただきました"

// nameLineRe accepts lines composed solely of Japanese script, Latin
// letters and whitespace.
var nameLineRe = regexp.MustCompile(`^[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}\x{3000}-\x{303F}a-zA-Z\s]+$`)

// anchorBlockRes span the anchor line and the blank-separated name line
// preceding it.
var anchorBlockRes = []*regexp.Regexp{
	regexp.MustCompile(`メール\n\n([\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}\s]+?)\n\nより、ご予約をいただきました`),
	regexp.MustCompile(`メール\s*\n\s*([\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}\s]+?)\s*\n\s*より、ご予約をいただきました`),
}

// generalNameRes are the honorific-suffix and labeled-field fallbacks,
// tried in order.
var generalNameRes = []*regexp.Regexp{
	regexp.MustCompile(`([^\s\n]{1,20})様`),
	regexp.MustCompile(`([^\s\n]{1,20})さま`),
	regexp.MustCompile(`([^\s\n]{1,20})サマ`),
	regexp.MustCompile(`お名前[：:]\s*([^\s\n]{1,20})`),
	regexp.MustCompile(`氏名[：:]\s*([^\s\n]{1,20})`),
	regexp.MustCompile(`予約者[：:]\s*([^\s\n]{1,20})`),
}

var nameBlacklist = []string{"@", "http", "www", ".com", ".jp", "hallel", "メール", "ご予約", "より"}

var honorificSuffixes = []string{"様", "さま", "サマ"}

// stripHonorific drops a trailing honorific so "田中 様" and "田中様"
// extract the same customer name.
func stripHonorific(name string) string {
	for _, suffix := range honorificSuffixes {
		if strings.HasSuffix(name, suffix) {
			if trimmed := strings.TrimSpace(strings.TrimSuffix(name, suffix)); trimmed != "" {
				return trimmed
			}
		}
	}
	return name
}

// CustomerName extracts the customer name from a message body using a
// layered strategy: the booking-confirmation line walk, the anchored
// regex fallback, then the generic honorific/labeled patterns. Returns
// the unknown sentinel when nothing matches.
func CustomerName(body string) string {
	if body == "" {
		return utils.UnknownName
	}

	if name, ok := nameAboveAnchorLine(body); ok {
		return stripHonorific(name)
	}

	for _, re := range anchorBlockRes {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if n := utf8.RuneCountInString(name); n >= 1 && n <= 15 && !blacklisted(name) && !allDigits(name) {
			return stripHonorific(name)
		}
	}

	for _, re := range generalNameRes {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name != "" && !containsAny(name, "@", "http", "www", ".com", ".jp") {
			return name
		}
	}

	return utils.UnknownName
}

// nameAboveAnchorLine finds the exact booking-confirmation sentinel line
// and walks backward over preceding lines: only the first non-empty line
// is considered, and it must be short, name-shaped and not blacklisted.
func nameAboveAnchorLine(body string) (string, bool) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != bookingAnchorLine+"。" && trimmed != bookingAnchorLine {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			prev := strings.TrimSpace(lines[j])
			if prev == "" {
				continue
			}
			if !strings.HasSuffix(prev, "メール") && utf8.RuneCountInString(prev) <= 20 &&
				nameLineRe.MatchString(prev) && !blacklisted(prev) && !allDigits(prev) {
				return prev, true
			}
			break
		}
	}
	return "", false
}

func blacklisted(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range nameBlacklist {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
