package models

// Email is an outgoing notification handed to the mail sender.
type Email struct {
	To      string
	Subject string
	Body    string
}
