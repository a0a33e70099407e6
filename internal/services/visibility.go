package services

import (
	"strings"
	"unicode/utf8"

	"github.com/bfqc/courtres/internal/models"
)

// View is what a caller may see of a reservation. Full is only set for
// admins; public viewers get the masked name and the coaching flag.
type View struct {
	Name         string
	WithCoaching bool
	Full         *models.Reservation
}

func Mask(r models.Reservation, isAdmin bool) View {
	if isAdmin {
		full := r
		return View{Name: r.Name, WithCoaching: r.WithCoaching, Full: &full}
	}
	return View{Name: MaskName(r.Name), WithCoaching: r.WithCoaching}
}

// MaskName keeps the first word and the initial of the rest:
// "John Smith" -> "John S".
func MaskName(full string) string {
	first, rest, found := strings.Cut(full, " ")
	if !found {
		return full
	}
	rest = strings.TrimLeft(rest, " ")
	if rest == "" {
		return first
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return first + " " + string(r)
}
