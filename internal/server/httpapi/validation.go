package httpapi

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errBlank = errors.New("must not be blank")

// notBlank rejects strings that are empty after trimming whitespace.
func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.RuneLength(1, 50), is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.RuneLength(3, 20)),
		validation.Field(&r.LastName, validation.Required, validation.RuneLength(3, 20)),
		validation.Field(&r.Password, validation.Required, validation.RuneLength(6, 40)),
	)
}

func (d SessionDto) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.By(notBlank), validation.RuneLength(0, 50)),
		validation.Field(&d.Date, validation.NotNil),
		validation.Field(&d.TeacherID, validation.Required),
		validation.Field(&d.Description, validation.By(notBlank), validation.RuneLength(0, 2500)),
	)
}
