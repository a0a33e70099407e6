package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bfqc/courtres/internal/services"
)

type reservationForm struct {
	Name         string `validate:"required,max=50"`
	Contact      string `validate:"required,max=20"`
	Date         string `validate:"required,datetime=2006-01-02"`
	TimeSlot     string `validate:"required,slot"`
	WithCoaching bool
}

type editForm struct {
	ResID uint `validate:"required"`
	reservationForm
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Next     string
}

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
		return services.IsSlot(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register slot validation: %v", err))
	}
	return v
}

func readReservationForm(r *http.Request) reservationForm {
	return reservationForm{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Contact:      strings.TrimSpace(r.FormValue("contact")),
		Date:         strings.TrimSpace(r.FormValue("date")),
		TimeSlot:     strings.TrimSpace(r.FormValue("time_slot")),
		WithCoaching: r.FormValue("with_coaching") == "yes",
	}
}

func readEditForm(r *http.Request) editForm {
	id, _ := strconv.ParseUint(strings.TrimSpace(r.FormValue("res_id")), 10, 64)
	return editForm{ResID: uint(id), reservationForm: readReservationForm(r)}
}

// proposal converts a validated form. The date has already passed the
// datetime validator, so a parse failure here is an input error.
func (f reservationForm) proposal() (services.Proposal, error) {
	d, err := services.ParseDate(f.Date)
	if err != nil {
		return services.Proposal{}, services.ErrInvalidInput
	}
	return services.Proposal{
		Date:         d,
		TimeSlot:     f.TimeSlot,
		Name:         f.Name,
		Contact:      f.Contact,
		WithCoaching: f.WithCoaching,
	}, nil
}

// checkForm maps validator failures onto the services input errors so the
// caller has a single error vocabulary.
func (h *Handlers) checkForm(f any) error {
	err := h.validate.Struct(f)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			if fe.Field() == "TimeSlot" {
				return services.ErrInvalidSlot
			}
		}
	}
	return services.ErrInvalidInput
}
