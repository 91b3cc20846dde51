package domain

// EventKind discriminates the inbound transport events the bot reacts to.
type EventKind string

const (
	KindText     EventKind = "text"
	KindContact  EventKind = "contact"
	KindLocation EventKind = "location"
	KindCallback EventKind = "callback"
)

// Contact is a phone number shared through the transport's contact card.
type Contact struct {
	PhoneNumber string
}

// Location is a geographic point shared by the user.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Callback is a button press on an inline keyboard.
type Callback struct {
	ID   string
	Data string
}

// Event is a single inbound transport event, tagged by kind. ChatID
// identifies the conversation, UserID the acting user; they coincide in
// private chats but are kept separate on purpose.
type Event struct {
	Kind     EventKind
	ChatID   int64
	UserID   int64
	Text     string
	Contact  *Contact
	Location *Location
	Callback *Callback
}
