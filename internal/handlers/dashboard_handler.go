package handlers

import (
	"net/http"
	"sort"

	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/repositories"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the per-user dashboard and the community
// leaderboard.
type DashboardHandler struct {
	postRepository         repositories.PostRepository
	likeRepository         repositories.LikeRepository
	commentRepository      repositories.CommentRepository
	messageRepository      repositories.MessageRepository
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(postRepo repositories.PostRepository, likeRepo repositories.LikeRepository, commentRepo repositories.CommentRepository, messageRepo repositories.MessageRepository, notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *DashboardHandler {
	return &DashboardHandler{
		postRepository:         postRepo,
		likeRepository:         likeRepo,
		commentRepository:      commentRepo,
		messageRepository:      messageRepo,
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterDashboardRoutes registers dashboard and leaderboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/leaderboard", h.GetLeaderboard)
}

// GetDashboard returns the authenticated user's activity summary
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	ctx := c.Request().Context()

	totalPosts, _ := h.postRepository.CountByUserID(currentUserID)
	likesReceived, _ := h.likeRepository.CountReceivedByUserID(currentUserID)
	commentsReceived, _ := h.commentRepository.CountReceivedByUserID(currentUserID)
	messagesSent, _ := h.messageRepository.CountBySender(ctx, currentUserID)
	messagesReceived, _ := h.messageRepository.CountByRecipient(ctx, currentUserID)
	unreadNotifications, _ := h.notificationRepository.GetUnreadCount(currentUserID)

	recentPosts, err := h.postRepository.GetRecentByUserID(currentUserID, 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	recentMessages, err := h.messageRepository.GetRecentByUser(ctx, currentUserID, 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_posts":             totalPosts,
		"total_likes_received":    likesReceived,
		"total_comments_received": commentsReceived,
		"total_messages_sent":     messagesSent,
		"total_messages_received": messagesReceived,
		"unread_notifications":    unreadNotifications,
		"recent_posts":            recentPosts,
		"recent_messages":         recentMessages,
	})
}

// LeaderboardEntry is one row of the community leaderboard
type LeaderboardEntry struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	TotalPosts    int64  `json:"total_posts"`
	TotalLikes    int64  `json:"total_likes"`
	TotalComments int64  `json:"total_comments"`
	Score         int64  `json:"score"`
}

// GetLeaderboard returns the ten most active users, scored as posts
// authored plus likes and comments received.
func (h *DashboardHandler) GetLeaderboard(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		posts, _ := h.postRepository.CountByUserID(u.ID)
		likes, _ := h.likeRepository.CountReceivedByUserID(u.ID)
		comments, _ := h.commentRepository.CountReceivedByUserID(u.ID)
		entries = append(entries, LeaderboardEntry{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			TotalPosts:    posts,
			TotalLikes:    likes,
			TotalComments: comments,
			Score:         posts + likes + comments,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > 10 {
		entries = entries[:10]
	}

	return c.JSON(http.StatusOK, entries)
}
