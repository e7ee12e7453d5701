package extract

import (
	"regexp"
	"strings"
	"sync"

	"slotboard/utils"
)

// Matches labels of the form "渋谷店 STUDIO ⑥ (1)".
const studioPatternSuffix = `\s*STUDIO\s*[①②③④⑤⑥⑦⑧⑨⑩]*\s*\(\d+\)`

var (
	studioMu  sync.Mutex
	studioRes = map[string]*regexp.Regexp{}
)

func studioRe(location string) *regexp.Regexp {
	studioMu.Lock()
	defer studioMu.Unlock()
	re, ok := studioRes[location]
	if !ok {
		re = regexp.MustCompile(`(` + regexp.QuoteMeta(location) + studioPatternSuffix + `)`)
		studioRes[location] = re
	}
	return re
}

// Studio extracts the studio label for the given location marker,
// falling back to a bare STUDIO token, then the unknown sentinel.
func Studio(text, location string) string {
	if location != "" {
		if m := studioRe(location).FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	if strings.Contains(text, "STUDIO") {
		return "STUDIO"
	}
	return utils.UnknownStudio
}
