package handler

type createPostRequest struct {
	Text  string `json:"text"`
	Image string `json:"img"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

type likeResponse struct {
	Liked bool     `json:"liked"`
	Likes []string `json:"likes"`
}
