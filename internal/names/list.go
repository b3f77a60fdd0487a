package names

import (
	"regexp"
	"strings"
)

// ampersandCredit matches ensemble credits whose "&" is part of the name.
var ampersandCredit = regexp.MustCompile(`(?i)(?:&|\band)\s+(?:(?:his|her|their)\s+orchestra|chorus)\b`)

// ExpandList splits credit strings on ";" and on "&", keeping credits like
// "Mantovani & His Orchestra" whole. Empty entries are dropped.
func ExpandList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !strings.Contains(part, "&") || ampersandCredit.MatchString(part) {
				out = append(out, part)
				continue
			}
			for _, p := range strings.Split(part, "&") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// ContainsKey reports whether any of values has the given MakeKey key.
func ContainsKey(values []string, key string) bool {
	for _, v := range values {
		if MakeKey(v) == key {
			return true
		}
	}
	return false
}
