package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sociogram/social-api/internal/core/ports"
)

// UserHandler handles profile reads, suggestions, follow toggles and profile
// updates.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile handles GET /api/users/profile/:username.
//
// @Summary      Get a user's public profile
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  errorResponse
// @Router       /api/users/profile/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.userService.Profile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Suggested handles GET /api/users/suggested.
//
// @Summary      Suggested users to follow
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/users/suggested [get]
func (h *UserHandler) Suggested(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	users, err := h.userService.Suggested(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ToggleFollow handles POST /api/users/follow/:id.
//
// @Summary      Follow or unfollow a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Target user ID"
// @Success      200  {object}  followResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/follow/{id} [post]
func (h *UserHandler) ToggleFollow(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	following, err := h.userService.ToggleFollow(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followResponse{Following: following})
}

// Update handles POST /api/users/update.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change; empty fields are left as-is"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/users/update [post]
func (h *UserHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Username:        req.Username,
		Bio:             req.Bio,
		Link:            req.Link,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImg:      req.ProfileImg,
		CoverImg:        req.CoverImg,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
