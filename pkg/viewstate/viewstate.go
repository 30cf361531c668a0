// Package viewstate encodes the uniform page state machine shared by every
// list and form page: Loading -> Ready | Error, with delete flows passing
// through ConfirmPending and Processing before refetching.
package viewstate

// State is the rendering state a page view model reports.
type State string

const (
	StateLoading        State = "loading"
	StateReady          State = "ready"
	StateError          State = "error"
	StateConfirmPending State = "confirm_pending"
	StateProcessing     State = "processing"
)

// EmptyListMessage is rendered as an explicit row instead of an empty table
// body when a list comes back with no entries.
const EmptyListMessage = "Nenhum registro encontrado."

// Page is the shared portion of every page view model.
type Page struct {
	State        State  `json:"state"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Ready builds the terminal happy state; empty lists carry the explicit
// no-records message.
func Ready(itemCount int) Page {
	p := Page{State: StateReady}
	if itemCount == 0 {
		p.EmptyMessage = EmptyListMessage
	}
	return p
}

// Errored builds the terminal failure state. The page stays rendered with an
// inline message; nothing retries automatically.
func Errored(message string) Page {
	return Page{State: StateError, Error: message}
}
