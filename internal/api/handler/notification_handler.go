package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sociogram/social-api/internal/core/domain"
	"github.com/sociogram/social-api/internal/core/ports"
)

// NotificationHandler handles notification listing and deletion.
type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type notificationsResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
}

// List handles GET /api/notifications. Listing marks every returned
// notification as read.
//
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notificationsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	items, err := h.notificationService.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationsResponse{Notifications: items})
}

// DeleteOne handles DELETE /api/notifications/:id. Only the recipient may
// delete a notification.
//
// @Summary      Delete one notification
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) DeleteOne(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.DeleteOne(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notification deleted successfully"})
}

// DeleteAll handles DELETE /api/notifications.
//
// @Summary      Delete all of the caller's notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications [delete]
func (h *NotificationHandler) DeleteAll(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.DeleteAll(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "notifications deleted successfully"})
}
