package domain

import "time"

// User models an account and its denormalized social edges. Following and
// Followers hold user IDs; LikedPosts holds post IDs. The like/follow sets are
// kept pairwise consistent with Post.Likes and the counterpart user's sets by
// the service layer.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Bio          string    `json:"bio,omitempty"`
	Link         string    `json:"link,omitempty"`
	ProfileImg   string    `json:"profileImg,omitempty"`
	CoverImg     string    `json:"coverImg,omitempty"`
	Following    []string  `json:"following"`
	Followers    []string  `json:"followers"`
	LikedPosts   []string  `json:"likedPosts"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsFollowing reports whether the user already follows targetID.
func (u *User) IsFollowing(targetID string) bool {
	for _, id := range u.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// HasLiked reports whether postID is in the user's liked set.
func (u *User) HasLiked(postID string) bool {
	for _, id := range u.LikedPosts {
		if id == postID {
			return true
		}
	}
	return false
}
