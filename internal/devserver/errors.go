package devserver

import "errors"

var (
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrEventNotFound    = errors.New("event not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Messages reported in the errors array, matching the production backend
const (
	MessageUserExists       = "User exists already."
	MessageUserNotFound     = "User does not exist!"
	MessageWrongPassword    = "Password is incorrect!"
	MessageEventNotFound    = "Event not found."
	MessageBookingNotFound  = "Booking not found."
	MessageUnauthenticated  = "Unauthenticated!"
	MessageInvalidArguments = "Invalid arguments."
)

var clientMessages = []struct {
	err     error
	message string
}{
	{ErrUserExists, MessageUserExists},
	{ErrUserNotFound, MessageUserNotFound},
	{ErrWrongPassword, MessageWrongPassword},
	{ErrEventNotFound, MessageEventNotFound},
	{ErrBookingNotFound, MessageBookingNotFound},
	{ErrUnauthenticated, MessageUnauthenticated},
	{ErrInvalidArguments, MessageInvalidArguments},
}

// clientMessage returns the message for a known resolver error. Unknown
// errors are reported with their own text and ok=false.
func clientMessage(err error) (string, bool) {
	for _, m := range clientMessages {
		if errors.Is(err, m.err) {
			return m.message, true
		}
	}
	return err.Error(), false
}
