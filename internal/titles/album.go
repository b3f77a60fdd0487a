package titles

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dpetit12345/classical-fixes/internal/names"
)

const discWord = `(?:disc|disk|cd)`

var (
	bracketedDisc = regexp.MustCompile(`(?i)[(\[]\s*` + discWord + `\s*\d+(?:\s*(?:of|/)\s*\d+)?\s*[)\]]`)
	bareDisc      = regexp.MustCompile(`(?i)\b` + discWord + `\s*\d+(?:\s*(?:of|/)\s*\d+)?\b`)
	discNumber    = regexp.MustCompile(`(?i)\b` + discWord + `\s*(\d+)`)

	emptyBrackets  = regexp.MustCompile(`\(\s*\)|\[\s*\]`)
	repeatedDashes = regexp.MustCompile(`(?:\s*[-–—]\s*){2,}`)
	repeatedCommas = regexp.MustCompile(`(?:\s*[,;]\s*){2,}`)
	spaceBeforeSep = regexp.MustCompile(`\s+([,;])`)
	multiSpace     = regexp.MustCompile(`\s{2,}`)
)

const edgePunct = " \t,;:-–—/"

// CleanAlbumTitle strips disc markers such as "Disc 2", "(CD 1)" or
// "[Disk 3 of 5]" wherever they appear and tidies the punctuation left
// behind: "Beethoven Symphonies, Disc 1" becomes "Beethoven Symphonies".
func CleanAlbumTitle(album string) string {
	out := album
	for range maxPasses {
		next := bracketedDisc.ReplaceAllString(out, " ")
		next = bareDisc.ReplaceAllString(next, " ")
		next = tidy(next)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func tidy(s string) string {
	s = emptyBrackets.ReplaceAllString(s, " ")
	s = repeatedDashes.ReplaceAllString(s, " - ")
	s = repeatedCommas.ReplaceAllStringFunc(s, func(m string) string {
		return strings.TrimSpace(m)[:1] + " "
	})
	s = spaceBeforeSep.ReplaceAllString(s, "$1")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.Trim(s, edgePunct)
}

// DiscNumberFromAlbum returns the number of the first disc marker in album.
func DiscNumberFromAlbum(album string) (int, bool) {
	m := discNumber.FindStringSubmatch(album)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// StripBracketedName removes "[Name]" or "[LastName]" annotations of name
// from album, case-insensitively.
func StripBracketedName(album, name string) string {
	name = strings.TrimSpace(name)
	if name == "" || !strings.Contains(album, "[") {
		return album
	}
	alts := []string{regexp.QuoteMeta(name)}
	if last := names.LastName(name); last != "" && last != name {
		alts = append(alts, regexp.QuoteMeta(last))
	}
	re := regexp.MustCompile(`(?i)\[\s*(?:` + strings.Join(alts, "|") + `)\s*\]`)
	if !re.MatchString(album) {
		return album
	}
	out := re.ReplaceAllString(album, " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(out, " "))
}
