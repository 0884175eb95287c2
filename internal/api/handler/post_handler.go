package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sociogram/social-api/internal/core/ports"
)

// PostHandler handles post creation, deletion, comments, likes and the feed
// queries.
type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles POST /api/posts/create.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post content (text and/or image payload)"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/posts/create [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.postService.Create(c.Request().Context(), userID, ports.CreatePostInput{
		Text:  req.Text,
		Image: req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Delete handles DELETE /api/posts/:id. Only the author may delete a post.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "post deleted successfully"})
}

// Comment handles POST /api/posts/comment/:id.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment text"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/posts/comment/{id} [post]
func (h *PostHandler) Comment(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.Comment(c.Request().Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// ToggleLike handles POST /api/posts/like/:id.
//
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  likeResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/like/{id} [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	liked, likes, err := h.postService.ToggleLike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Liked: liked, Likes: likes})
}

// All handles GET /api/posts/all.
//
// @Summary      List all posts, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /api/posts/all [get]
func (h *PostHandler) All(c echo.Context) error {
	posts, err := h.postService.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Liked handles GET /api/posts/liked, the caller's liked posts.
//
// @Summary      List posts the caller liked
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /api/posts/liked [get]
func (h *PostHandler) Liked(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.Liked(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Following handles GET /api/posts/following, the caller's feed.
//
// @Summary      List posts from followed users
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /api/posts/following [get]
func (h *PostHandler) Following(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.Following(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ByUser handles GET /api/posts/user/:username.
//
// @Summary      List a user's posts
// @Tags         posts
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {array}   domain.Post
// @Failure      404       {object}  errorResponse
// @Router       /api/posts/user/{username} [get]
func (h *PostHandler) ByUser(c echo.Context) error {
	posts, err := h.postService.ByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}
