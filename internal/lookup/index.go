package lookup

import (
	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/names"
)

type roleIndex struct {
	full  map[string]int
	alias map[string]int
}

func (r roleIndex) get(key string) (int, bool) {
	if i, ok := r.full[key]; ok {
		return i, true
	}
	i, ok := r.alias[key]
	return i, ok
}

type index struct {
	composers  roleIndex
	conductors roleIndex
	orchestras roleIndex
	// aliases maps a misspelling key to its canonical name.
	aliases map[string]string
}

func buildIndex(t Table, threshold float64) index {
	composerNames := make([]string, len(t.Composers))
	for i, c := range t.Composers {
		composerNames[i] = c.Name
	}
	conductorNames := make([]string, len(t.Conductors))
	for i, c := range t.Conductors {
		conductorNames[i] = c.Name
	}
	orchestraNames := make([]string, len(t.Orchestras))
	for i, o := range t.Orchestras {
		orchestraNames[i] = o.Name
	}

	idx := index{
		composers:  personIndex(composerNames, threshold),
		conductors: personIndex(conductorNames, threshold),
		orchestras: roleIndex{full: fullKeys(orchestraNames)},
	}
	idx.aliases = misspellingIndex(t.Misspellings)
	return idx
}

// misspellingIndex maps every alias key to its canonical name. An alias
// listed under two different canonical names is dropped.
func misspellingIndex(list []Misspelling) map[string]string {
	aliases := make(map[string]string)
	ambiguous := make(map[string]bool)
	for _, m := range list {
		for _, a := range m.Aliases {
			k := names.MakeKey(a)
			if k == "" || ambiguous[k] {
				continue
			}
			owner, taken := aliases[k]
			switch {
			case !taken:
				aliases[k] = m.Canonical
			case names.MakeKey(owner) != names.MakeKey(m.Canonical):
				log.Debug().Str("alias", a).Str("first", owner).Str("second", m.Canonical).
					Msg("ambiguous misspelling alias dropped")
				delete(aliases, k)
				ambiguous[k] = true
			}
		}
	}
	return aliases
}

func fullKeys(list []string) map[string]int {
	full := make(map[string]int, len(list))
	for i, n := range list {
		k := names.MakeKey(n)
		if _, ok := full[k]; !ok && k != "" {
			full[k] = i
		}
	}
	return full
}

// personIndex registers the full key of every name plus its last-name and
// initials keys. An alias key claimed by two dissimilar people is dropped.
func personIndex(list []string, threshold float64) roleIndex {
	r := roleIndex{full: fullKeys(list), alias: make(map[string]int)}
	ambiguous := make(map[string]bool)
	for i, n := range list {
		for _, k := range []string{names.MakeKey(names.LastName(n)), names.InitialsKey(n)} {
			if k == "" || ambiguous[k] {
				continue
			}
			if _, ok := r.full[k]; ok {
				continue
			}
			j, claimed := r.alias[k]
			switch {
			case !claimed:
				r.alias[k] = i
			case j != i && !names.AreSimilar(list[j], n, threshold):
				log.Debug().Str("key", k).Str("first", list[j]).Str("second", n).
					Msg("ambiguous lookup alias dropped")
				delete(r.alias, k)
				ambiguous[k] = true
			}
		}
	}
	return r
}
