package workflow

import (
	"errors"
	"strings"

	"github.com/atomicstack/title-page-form/internal/api"
)

// Severity ranks a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a message the user must acknowledge.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

const (
	DataEnteredTitle   = "Data Entered"
	DataEnteredMessage = "You have entered information in a list (composer or extra info) but not added it to the page. Press ctrl+n to add it or delete it from the input."
)

// DataEntered is shown when submit is attempted with uncommitted list input.
func DataEntered() Notification {
	return Notification{
		Title:    DataEnteredTitle,
		Message:  DataEnteredMessage,
		Severity: SeverityWarning,
	}
}

// NotificationFor turns a failed request into an error notification. Server
// rejections show their detail text, anything else its error text.
func NotificationFor(err error) Notification {
	n := Notification{Title: "Error", Severity: SeverityError}
	if err == nil {
		return n
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		n.Message = statusErr.Error()
		return n
	}
	n.Message = strings.TrimSpace(err.Error())
	return n
}
