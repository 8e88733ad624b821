package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/realtime"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ChatHandler handles direct messaging between users
type ChatHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository // To resolve shared posts
	notifier          *realtime.Notifier
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, postRepo repositories.PostRepository, notifier *realtime.Notifier) *ChatHandler {
	return &ChatHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		postRepository:    postRepo,
		notifier:          notifier,
	}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.POST("/chat/send", h.SendMessage)
	g.POST("/chat/share-post", h.SharePost)
	g.GET("/chat/history/:user_id", h.GetHistory)
}

// SendMessage persists a direct message, pushes it on the recipient's
// chat channel, and records a direct_message notification.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipient, err := h.userRepository.GetUserByID(req.RecipientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	msg := &models.ChatMessage{
		SenderID:    currentUserID,
		RecipientID: recipient.ID,
		Content:     req.Content,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Deliver(recipient.ID, realtime.ChannelChat, realtime.MessageEvent{
		Event:     realtime.EventNewMessage,
		SenderID:  currentUserID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339),
	})

	if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		h.notifier.Notify(recipient.ID, currentUserID, models.NotificationDirectMessage, actor.Name+" sent you a message")
	}

	return c.JSON(http.StatusCreated, msg)
}

// SharePost sends a post to another user as a direct message
func (h *ChatHandler) SharePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SharePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipient, err := h.userRepository.GetUserByID(req.RecipientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post, err := h.postRepository.GetPostByID(req.PostID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The frontend maps /post/{id} to the post view.
	content := fmt.Sprintf("Shared a post: '%s'\n%s\n/post/%d", post.Title, req.Message, post.ID)
	msg := &models.ChatMessage{
		SenderID:    currentUserID,
		RecipientID: recipient.ID,
		Content:     content,
		PostID:      post.ID,
	}
	if err := h.messageRepository.CreateMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Deliver(recipient.ID, realtime.ChannelChat, realtime.MessageEvent{
		Event:     realtime.EventSharedPost,
		SenderID:  currentUserID,
		Content:   content,
		PostID:    post.ID,
		CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339),
	})

	if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		h.notifier.Notify(recipient.ID, currentUserID, models.NotificationSharedPost, actor.Name+" shared a post with you")
	}

	return c.JSON(http.StatusCreated, msg)
}

// GetHistory retrieves the conversation with another user, oldest first
func (h *ChatHandler) GetHistory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	otherUserID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	msgs, err := h.messageRepository.GetConversation(c.Request().Context(), currentUserID, uint(otherUserID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, msgs)
}
