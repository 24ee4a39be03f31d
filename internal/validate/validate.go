package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	MinPasswordLen     = 6
	MaxImageBytes      = 5 << 20
	MaxImagesPerReport = 3
)

// Error es un rechazo de validación local: se muestra tal cual y la
// request al backend no se envía.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// 0XXXXXXXXX o +94XXXXXXXXX
var phoneRe = regexp.MustCompile(`^(?:0\d{9}|\+94\d{9})$`)

// Phone acepta vacío (campo opcional).
func Phone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || phoneRe.MatchString(s) {
		return nil
	}
	return Errorf("Invalid phone number. Use 0XXXXXXXXX or +94XXXXXXXXX.")
}

type Field struct {
	Name  string
	Value string
}

// Required falla con el primer campo vacío.
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return Errorf("%s is required.", f.Name)
		}
	}
	return nil
}

func Password(password, confirm string) error {
	if len(password) < MinPasswordLen {
		return Errorf("Password must be at least %d characters.", MinPasswordLen)
	}
	if password != confirm {
		return Errorf("Passwords do not match.")
	}
	return nil
}

func ImageSize(size int64) error {
	if size > MaxImageBytes {
		return Errorf("Image must be 5MB or smaller.")
	}
	return nil
}

// ImageCount rechaza un upload si la entidad ya tiene el máximo.
func ImageCount(current int) error {
	if current >= MaxImagesPerReport {
		return Errorf("Maximum %d images allowed.", MaxImagesPerReport)
	}
	return nil
}

// First devuelve el primer error no nil.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
