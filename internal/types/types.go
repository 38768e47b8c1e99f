package types

// Message represents a room message mirrored from the store.
type Message struct {
	ID          string         `json:"id"`
	RoomID      string         `json:"roomId"`
	UserID      string         `json:"userId"`
	UserEmail   string         `json:"userEmail"`
	DisplayName string         `json:"displayName,omitempty"`
	Text        string         `json:"text"`
	CreatedAt   int64          `json:"createdAt"`
	Edited      bool           `json:"edited,omitempty"`
	EditedAt    *int64         `json:"editedAt,omitempty"`
	ReplyTo     *ReplySnapshot `json:"replyTo,omitempty"`
}

// Author returns the display label for the message sender.
func (m Message) Author() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.UserEmail
}

// ReplySnapshot is a frozen copy of a reply target taken at send time.
// It is a quote, not a live reference: editing or deleting the target
// never changes it.
type ReplySnapshot struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Room represents a chat room.
type Room struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

// Locked reports whether selecting the room requires a password.
func (r Room) Locked() bool {
	return r.PasswordHash != ""
}

// User is a directory entry used for mention resolution.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Label returns the name shown for the user in mentions and headers.
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return EmailLocalPart(u.Email)
}

// EmailLocalPart returns the part of an email address before the @.
func EmailLocalPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}

// Notification is an ephemeral mention notification. The queue is
// session-local, additive, and never deduplicated.
type Notification struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}
