package lookup

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("lookup"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateEntry checks entry and converts failures into a ValidationError
// listing every missing field in declaration order.
func validateEntry(role Role, entry any) error {
	err := validate.Struct(entry)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Role: role, Reason: err.Error()}
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if !slices.Contains(missing, field) {
			missing = append(missing, field)
		}
	}
	return &ValidationError{Role: role, Missing: missing}
}

func trimComposer(c Composer) Composer {
	return Composer{
		Name:     strings.TrimSpace(c.Name),
		SortName: strings.TrimSpace(c.SortName),
		View:     strings.TrimSpace(c.View),
		Epoque:   strings.TrimSpace(c.Epoque),
	}
}

func trimConductor(c Conductor) Conductor {
	return Conductor{Name: strings.TrimSpace(c.Name), SortName: strings.TrimSpace(c.SortName)}
}

func trimOrchestra(o Orchestra) Orchestra {
	return Orchestra{Name: strings.TrimSpace(o.Name)}
}

func trimMisspelling(m Misspelling) Misspelling {
	out := Misspelling{Canonical: strings.TrimSpace(m.Canonical)}
	for _, a := range m.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			out.Aliases = append(out.Aliases, a)
		}
	}
	return out
}
