package booking

import (
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CreateBookingRequest struct {
	RoomID   int64  `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Contact struct {
	Name  string
	Email string
	Phone string
}

// CreateBookingCommand is the typed admission request handed to the engine
// once the loose wire payload has been validated.
type CreateBookingCommand struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Contact  Contact
}

// Command validates the request and produces the typed command. Pure: no
// store access, no clock beyond date parsing. A non-empty map means the
// request is rejected and the fields tell the caller what to redisplay.
func (r CreateBookingRequest) Command() (CreateBookingCommand, map[string]string) {
	fields := make(map[string]string)

	if r.RoomID <= 0 {
		fields["room_id"] = "required"
	}

	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		fields["check_in"] = "invalid date, expected YYYY-MM-DD"
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		fields["check_out"] = "invalid date, expected YYYY-MM-DD"
	} else if fields["check_in"] == "" && !checkOut.After(checkIn) {
		fields["check_out"] = "must be after check_in"
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		fields["name"] = "required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		fields["email"] = "invalid email"
	}
	if !phonePattern.MatchString(r.Phone) {
		fields["phone"] = "must be 10 digits"
	}

	if len(fields) > 0 {
		return CreateBookingCommand{}, fields
	}

	return CreateBookingCommand{
		RoomID:   r.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Contact: Contact{
			Name:  name,
			Email: strings.TrimSpace(r.Email),
			Phone: r.Phone,
		},
	}, nil
}
