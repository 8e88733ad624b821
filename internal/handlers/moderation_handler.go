package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ModerationHandler handles moderator and admin actions
type ModerationHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *ModerationHandler {
	return &ModerationHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterModerationRoutes registers moderation routes on the staff and
// admin groups; the groups carry the role gates.
func (h *ModerationHandler) RegisterModerationRoutes(staff, admin *echo.Group) {
	staff.DELETE("/posts/:id/moderate", h.ModeratePost)
	admin.POST("/users/:id/ban", h.BanUser)
	admin.POST("/users/:id/unban", h.UnbanUser)
	admin.POST("/users/:id/promote", h.PromoteUser)
}

// ModeratePost removes a post along with its likes and comments
func (h *ModerationHandler) ModeratePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postRepository.DeletePost(uint(postID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "Post removed"})
}

// BanUser bans a user; they are rejected at the auth middleware on
// their next request.
func (h *ModerationHandler) BanUser(c echo.Context) error {
	return h.setBanned(c, true, "User banned")
}

// UnbanUser lifts a ban
func (h *ModerationHandler) UnbanUser(c echo.Context) error {
	return h.setBanned(c, false, "User unbanned")
}

func (h *ModerationHandler) setBanned(c echo.Context, banned bool, detail string) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userRepository.SetBanned(uint(userID), banned); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": detail})
}

// PromoteRequest defines the request body for changing a user's role
type PromoteRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

// PromoteUser changes a user's role
func (h *ModerationHandler) PromoteUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req PromoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.SetRole(uint(userID), req.Role); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "User promoted to " + req.Role})
}
