package domain

import "time"

// Comment is embedded in a post's ordered comment sequence. Comments are
// append-only; no edit or delete path exists.
type Comment struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	// Author is populated on reads and never carries a password hash.
	Author *User `json:"user,omitempty"`
}

// Post is the content aggregate: text and/or an externally hosted image,
// embedded comments and the set of liking user IDs. Likes mirrors each liker's
// User.LikedPosts set.
type Post struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text,omitempty"`
	ImageURL  string    `json:"img,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`

	// Author is populated on reads and never carries a password hash.
	Author *User `json:"user,omitempty"`
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
