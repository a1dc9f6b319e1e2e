package entity

import "time"

// Status of an appointment. The only transition the API exposes is
// pending/confirmed -> cancelled; a cancellation is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Departments is the closed set of medical specialties a booking can target.
var Departments = []string{
	"General Medicine",
	"Cardiology",
	"Dermatology",
	"Orthopedics",
	"Pediatrics",
	"Neurology",
}

// TimeSlots is the closed set of bookable start times.
var TimeSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
}

func ValidDepartment(s string) bool {
	for _, d := range Departments {
		if d == s {
			return true
		}
	}
	return false
}

func ValidTimeSlot(s string) bool {
	for _, t := range TimeSlots {
		if t == s {
			return true
		}
	}
	return false
}

// Appointment is a booking made by a user. FullName, Email and Phone are a
// snapshot of the contact info at booking time and are not re-synced when the
// owning user record changes. UserID is the ownership filter for every read
// and mutation.
type Appointment struct {
	ID              string
	UserID          string
	FullName        string
	Email           string
	Phone           string
	Department      string
	AppointmentDate string // calendar date, YYYY-MM-DD
	AppointmentTime string // one of TimeSlots
	Symptoms        string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
