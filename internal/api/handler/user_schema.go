package handler

type updateProfileRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email" validate:"omitempty,email"`
	Username        string `json:"username" validate:"omitempty,min=3,max=30"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

type followResponse struct {
	Following bool `json:"following"`
}
