package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"medcare-api/internal/domain/entity"
)

// phoneRe accepts digits, spaces, dashes and plus signs, at least ten of them.
var phoneRe = regexp.MustCompile(`^[0-9+\-\s]{10,}$`)

const dateLayout = "2006-01-02"

var v = newValidator()

// newValidator builds the validator used by the application layer.
// - Error messages use JSON tag names.
// - Domain rules: phone, department, timeslot, bookdate.
func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = val.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return entity.ValidDepartment(fl.Field().String())
	})
	_ = val.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return entity.ValidTimeSlot(fl.Field().String())
	})
	// bookdate: well-formed calendar date that is not in the past (UTC).
	_ = val.RegisterValidation("bookdate", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		today, _ := time.Parse(dateLayout, time.Now().UTC().Format(dateLayout))
		return !d.Before(today)
	})
	return val
}

// Struct validates a tagged struct and returns the raw validator error.
func Struct(s any) error {
	return v.Struct(s)
}

// Details converts validation/decoding errors into a map[field]message
// suitable for an API error's details payload.
func Details(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = messageFor(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "phone":
		return "must be a valid phone number"
	case "department":
		return "must be one of: " + strings.Join(entity.Departments, ", ")
	case "timeslot":
		return "must be one of: " + strings.Join(entity.TimeSlots, ", ")
	case "bookdate":
		return "must be a date in YYYY-MM-DD format that is not in the past"
	case "min":
		if fe.Param() != "" {
			return "must be at least " + fe.Param() + " characters long"
		}
		return "too short"
	case "max":
		if fe.Param() != "" {
			return "must be at most " + fe.Param() + " characters long"
		}
		return "too long"
	default:
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
