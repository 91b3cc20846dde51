package ports

import "context"

// Keyboard names the logical keyboard attached to an outbound message.
// Rendering is the transport adapter's concern; the core only picks which
// one to show.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	// KeyboardMain: the persistent reply menu (balance, spin, profile,
	// invite).
	KeyboardMain
	// KeyboardContact: a single request_contact button.
	KeyboardContact
	// KeyboardLocation: a single request_location button.
	KeyboardLocation
	// KeyboardRemove: removes any previously shown reply keyboard.
	KeyboardRemove
	// KeyboardProfile: inline buttons under the profile card (rename,
	// referral code entry, history, prizes).
	KeyboardProfile
)

// Sender delivers outbound effects to the chat transport.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb Keyboard) error
	AckCallback(ctx context.Context, callbackID string) error
}
