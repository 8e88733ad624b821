package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/models"
	"github.com/justcodeon231/Eduvos-Hackathon-2025/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	likeRepository    repositories.LikeRepository    // To attach like counts to responses
	commentRepository repositories.CommentRepository // To attach comment counts to responses
	userRepository    repositories.UserRepository    // To attach authors to responses
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, likeRepo repositories.LikeRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
		userRepository:    userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/search", h.SearchPosts)
	g.GET("/posts/categories", h.GetCategories)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category := req.Category
	if category == "" {
		category = models.CategoryGeneral
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
		UserID:   currentUserID,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, h.toResponses([]models.Post{*post})[0])
}

// GetPost retrieves a single post with counts and author
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.toResponses([]models.Post{*post})[0])
}

// GetPosts lists posts newest first, optionally filtered by category
func (h *PostHandler) GetPosts(c echo.Context) error {
	category := c.QueryParam("category")
	if category != "" && !models.IsValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid category")
	}

	posts, err := h.postRepository.GetPosts(category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.toResponses(posts))
}

// SearchPosts searches posts by title, content or category
func (h *PostHandler) SearchPosts(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing query parameter")
	}

	posts, err := h.postRepository.SearchPosts(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.toResponses(posts))
}

// GetCategories lists the valid post categories
func (h *PostHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": models.PostCategories})
}

// toResponses attaches like/comment counts and a compact author to each
// post, caching authors so a feed page does one lookup per distinct user.
func (h *PostHandler) toResponses(posts []models.Post) []models.PostResponse {
	responses := make([]models.PostResponse, len(posts))
	userCache := make(map[uint]models.UserCompact)

	for i, p := range posts {
		likes, _ := h.likeRepository.CountByPostID(p.ID)
		comments, _ := h.commentRepository.CountByPostID(p.ID)

		author, ok := userCache[p.UserID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(p.UserID); err == nil {
				author = user.ToCompact()
				userCache[p.UserID] = author
			}
		}

		responses[i] = models.PostResponse{
			Post:     p,
			Likes:    likes,
			Comments: comments,
			Author:   author,
		}
	}
	return responses
}
