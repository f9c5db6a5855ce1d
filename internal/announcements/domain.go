package announcements

import "time"

// Announcement is a broadcast message shown to every active member.
type Announcement struct {
	ID        int64
	Title     string
	Body      string
	AuthorID  int64
	Pinned    bool
	CreatedAt time.Time
}
