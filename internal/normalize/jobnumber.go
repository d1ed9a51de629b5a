package normalize

import (
	"regexp"
	"strings"
)

var (
	reJobNumber     = regexp.MustCompile(`^\d{6}[A-Za-z]?$`)
	reJobNumberScan = regexp.MustCompile(`\b\d{6}[A-Za-z]?\b`)
)

// IsJobNumber reports whether s is exactly six digits with an optional letter suffix.
func IsJobNumber(s string) bool {
	return reJobNumber.MatchString(s)
}

// FindJobNumbers returns the job-number shaped tokens in text, first occurrence order, no duplicates.
func FindJobNumbers(text string) []string {
	return Dedupe(reJobNumberScan.FindAllString(text, -1))
}

// SplitJobNumbers splits a comma-separated list, trimming and dropping blanks and repeats.
func SplitJobNumbers(joined string) []string {
	return Dedupe(strings.Split(joined, ","))
}

// JoinJobNumbers renders ids as a ", " separated list without repeats.
func JoinJobNumbers(ids []string) string {
	return strings.Join(Dedupe(ids), ", ")
}

// Dedupe trims items and drops empties and case-insensitive repeats, keeping first spelling.
func Dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key := strings.ToUpper(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
