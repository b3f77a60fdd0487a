// Package lookup holds the table of known composers, conductors, orchestras
// and misspellings used to infer roles from free-text credits.
package lookup

import (
	"regexp"
	"slices"
	"strings"
)

// Role names a table of the lookup. The values are the role column of the
// artists file.
type Role string

const (
	RoleComposer    Role = "Composer"
	RoleConductor   Role = "Conductor"
	RoleOrchestra   Role = "Orchestra"
	RoleMisspelling Role = "Misspelling"
)

// Composer is a known composer. View is the display form with dates,
// "Bach, Johann Sebastian (1685-1750)".
type Composer struct {
	Name     string `lookup:"composer" validate:"required"`
	SortName string `lookup:"composerSort" validate:"required"`
	View     string `lookup:"composerView" validate:"required"`
	Epoque   string `lookup:"epoque" validate:"required"`
}

var viewDates = regexp.MustCompile(`\(([^)]*)\)\s*$`)

// Dates returns the parenthesised life dates of the composer's view,
// or "" when the view carries none.
func (c Composer) Dates() string {
	if m := viewDates.FindStringSubmatch(c.View); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Conductor is a known conductor.
type Conductor struct {
	Name     string `lookup:"conductor" validate:"required"`
	SortName string `lookup:"conductorSort"`
}

// Orchestra is a known orchestra or ensemble.
type Orchestra struct {
	Name string `lookup:"orchestra" validate:"required"`
}

// Misspelling maps alternative spellings onto a canonical name.
type Misspelling struct {
	Canonical string   `lookup:"canonical" validate:"required"`
	Aliases   []string `lookup:"aliases" validate:"required,min=1,dive,required"`
}

// Table is the full content of the lookup, in insertion order.
type Table struct {
	Composers    []Composer
	Conductors   []Conductor
	Orchestras   []Orchestra
	Misspellings []Misspelling
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	c := Table{
		Composers:  slices.Clone(t.Composers),
		Conductors: slices.Clone(t.Conductors),
		Orchestras: slices.Clone(t.Orchestras),
	}
	if t.Misspellings != nil {
		c.Misspellings = make([]Misspelling, len(t.Misspellings))
		for i, m := range t.Misspellings {
			c.Misspellings[i] = Misspelling{Canonical: m.Canonical, Aliases: slices.Clone(m.Aliases)}
		}
	}
	return c
}

// Len returns the number of entries across all roles.
func (t Table) Len() int {
	return len(t.Composers) + len(t.Conductors) + len(t.Orchestras) + len(t.Misspellings)
}
