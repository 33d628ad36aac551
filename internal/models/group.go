package models

// Group represents a household whose members share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Ev", "Roommates").
	Name string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMember is a user's membership in a group. Email and DisplayName come
// from the user record.
type GroupMember struct {
	GroupID     string
	UserID      string
	Email       string
	DisplayName string
	CreatedAt   int64
}
