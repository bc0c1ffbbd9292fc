package message

import (
	"regexp"
	"strconv"
	"strings"
)

// statusWords is the recognised vocabulary, in keyword-scan order.
var statusWords = []string{
	"finished",
	"complete",
	"completed",
	"done",
	"started",
	"begin",
	"began",
	"paused",
	"resumed",
	"blocked",
	"delayed",
	"in-progress",
}

var statusByWord = map[string]Status{
	"finished":    StatusCompleted,
	"complete":    StatusCompleted,
	"completed":   StatusCompleted,
	"done":        StatusCompleted,
	"started":     StatusInProgress,
	"begin":       StatusInProgress,
	"began":       StatusInProgress,
	"resumed":     StatusInProgress,
	"in-progress": StatusInProgress,
	"paused":      StatusDelayed,
	"delayed":     StatusDelayed,
	"blocked":     StatusDelayed,
}

var (
	statusAlt = quoteAll(statusWords)

	// "finished with plumbing at 92 turtleback road"
	statusFirstRe = regexp.MustCompile(`(?i)^(?P<status>` + statusAlt + `)(?:\s+with)?\s+(?P<task>.+?)\s+(?:at|@)\s+(?P<where>.+)$`)

	// "92 turtleback plumbing is 100% done"
	addressFirstRe = regexp.MustCompile(`(?i)^(?P<where>\d+\s+.+?)\s+(?P<task>.+?)\s+(?:is\s+(?P<pct>\d{1,3})%?\s+)?(?P<status>` + statusAlt + `)$`)

	percentRe = regexp.MustCompile(`(\d{1,3})\s*%`)
)

// strategy tries to extract an update from a normalized body.
type strategy func(normalized string) (Parsed, bool)

var strategies = []strategy{
	parseStatusFirst,
	parseAddressFirst,
	parseKeyword,
}

// Parse extracts a status update from a free-form message body.
// Strategies are tried in order and the first match wins; a body with no
// status vocabulary yields an empty Parsed.
func Parse(body string) Parsed {
	normalized := Normalize(body)
	for _, try := range strategies {
		if parsed, ok := try(normalized); ok {
			return parsed
		}
	}
	return Parsed{}
}

// StatusForWord maps a vocabulary word to its canonical status.
func StatusForWord(word string) (Status, bool) {
	status, ok := statusByWord[strings.ToLower(word)]
	return status, ok
}

func parseStatusFirst(normalized string) (Parsed, bool) {
	groups := namedGroups(statusFirstRe, normalized)
	if groups == nil {
		return Parsed{}, false
	}
	status, _ := StatusForWord(groups["status"])
	return Parsed{
		Status:   status,
		Task:     strings.TrimSpace(groups["task"]),
		Where:    strings.TrimSpace(groups["where"]),
		Progress: findPercent(normalized),
	}, true
}

func parseAddressFirst(normalized string) (Parsed, bool) {
	groups := namedGroups(addressFirstRe, normalized)
	if groups == nil {
		return Parsed{}, false
	}
	status, _ := StatusForWord(groups["status"])
	progress := parsePercent(groups["pct"])
	if progress == nil {
		progress = findPercent(normalized)
	}
	return Parsed{
		Status:   status,
		Task:     strings.TrimSpace(groups["task"]),
		Where:    strings.TrimSpace(groups["where"]),
		Progress: progress,
	}, true
}

func parseKeyword(normalized string) (Parsed, bool) {
	lowered := strings.ToLower(normalized)
	for _, word := range statusWords {
		if strings.Contains(lowered, word) {
			return Parsed{
				Status:   statusByWord[word],
				Progress: findPercent(normalized),
			}, true
		}
	}
	return Parsed{}, false
}

// findPercent returns the first "NN%" in s, clamped to [0,100].
func findPercent(s string) *int {
	m := percentRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return parsePercent(m[1])
}

func parsePercent(digits string) *int {
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	n = ClampPercent(n)
	return &n
}

// ClampPercent bounds a percentage to [0,100].
func ClampPercent(n int) int {
	return min(100, max(0, n))
}

func namedGroups(re *regexp.Regexp, s string) map[string]string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	groups := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}
	return groups
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}
