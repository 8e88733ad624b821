package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/realtime"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ReportHandler handles reporting of posts and chat messages
type ReportHandler struct {
	reportRepository  repositories.ReportRepository
	postRepository    repositories.PostRepository
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	notifier          *realtime.Notifier
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository, postRepo repositories.PostRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifier *realtime.Notifier) *ReportHandler {
	return &ReportHandler{
		reportRepository:  reportRepo,
		postRepository:    postRepo,
		messageRepository: messageRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// RegisterReportRoutes registers report routes. The listing group is
// expected to carry the staff role gate.
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group, staff *echo.Group) {
	g.POST("/report", h.CreateReport)
	staff.GET("/reports", h.GetReports)
}

// CreateReport files a report against a post or a chat message and
// broadcasts it to all moderators and admins.
func (h *ReportHandler) CreateReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.PostID == nil && req.MessageID == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Must provide post_id or message_id to report")
	}

	if req.PostID != nil {
		if _, err := h.postRepository.GetPostByID(*req.PostID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Post not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	if req.MessageID != nil {
		if _, err := h.messageRepository.GetMessageByID(c.Request().Context(), *req.MessageID); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
	}

	report := &models.Report{
		ReporterID: currentUserID,
		PostID:     req.PostID,
		MessageID:  req.MessageID,
		Reason:     strings.TrimSpace(req.Reason),
	}
	if err := h.reportRepository.CreateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Staff broadcast: every moderator and admin gets a durable
	// notification plus a live push. A staff reporter never notifies
	// themselves; the notifier suppresses that.
	staff, err := h.userRepository.GetStaff()
	if err == nil {
		staffIDs := make([]uint, 0, len(staff))
		for _, s := range staff {
			staffIDs = append(staffIDs, s.ID)
		}
		reporterName := "Someone"
		if reporter, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			reporterName = reporter.Name
		}
		h.notifier.NotifyStaff(staffIDs, currentUserID, models.NotificationReportFiled, reporterName+" filed a report: "+report.Reason)
	}

	return c.JSON(http.StatusCreated, echo.Map{"detail": "Report submitted", "report_id": report.ID})
}

// GetReports lists all reports, newest first (staff only)
func (h *ReportHandler) GetReports(c echo.Context) error {
	reports, err := h.reportRepository.GetReports()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reports)
}
