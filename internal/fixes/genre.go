package fixes

import (
	"slices"
	"strings"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// SubGenres are genres folded into the main genre. The previous value is
// kept in OrigGenre.
var SubGenres = []string{
	"opera", "operetta", "orchestral", "keyboard", "symphonic", "chamber",
	"choral", "vocal", "sacred", "concerto", "sonata", "oratorio",
}

func isSubGenre(genre string) bool {
	return slices.Contains(SubGenres, strings.ToLower(strings.TrimSpace(genre)))
}

func (s *Service) fixGenre(r *record.Record) {
	if s.genre == "" {
		return
	}
	switch {
	case strings.TrimSpace(r.Genre) == "":
		r.Genre = s.genre
	case isSubGenre(r.Genre):
		r.OrigGenre = r.Genre
		r.Genre = s.genre
	}
}
