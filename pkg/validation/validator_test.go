package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type bookForm struct {
	Phone      string `json:"phone" validate:"required,phone"`
	Department string `json:"department" validate:"required,department"`
	Time       string `json:"appointmentTime" validate:"required,timeslot"`
	Date       string `json:"appointmentDate" validate:"required,bookdate"`
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func validForm() bookForm {
	return bookForm{
		Phone:      "+1-555-0100",
		Department: "Cardiology",
		Time:       "10:00 AM",
		Date:       futureDate(),
	}
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(validForm()))
}

func TestStructViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*bookForm)
		field  string
	}{
		{"phone too short", func(f *bookForm) { f.Phone = "12345" }, "phone"},
		{"phone bad chars", func(f *bookForm) { f.Phone = "phone-number!" }, "phone"},
		{"unknown department", func(f *bookForm) { f.Department = "Surgery" }, "department"},
		{"unknown slot", func(f *bookForm) { f.Time = "01:00 PM" }, "appointmentTime"},
		{"bad date format", func(f *bookForm) { f.Date = "01-06-2025" }, "appointmentDate"},
		{"past date", func(f *bookForm) { f.Date = "2000-01-01" }, "appointmentDate"},
		{"missing phone", func(f *bookForm) { f.Phone = "" }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := Struct(f)
			assert.Error(t, err)

			details := Details(err)
			assert.Contains(t, details, tt.field)
		})
	}
}

func TestBookdateToday(t *testing.T) {
	f := validForm()
	f.Date = time.Now().UTC().Format("2006-01-02")
	assert.NoError(t, Struct(f))
}

func TestDetailsNil(t *testing.T) {
	assert.Nil(t, Details(nil))
}
