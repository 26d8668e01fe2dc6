package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type ReviewHandler struct {
	ReviewService *services.ReviewService
}

func NewReviewHandler(s *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{ReviewService: s}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrCompanyNotExists)
		return
	}
	reviews, err := h.ReviewService.ListCompanyReviews(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewReviewList(reviews))
}

func (h *ReviewHandler) AddReview(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	companyID, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrCompanyNotExists)
		return
	}
	var req dtos.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.ReviewService.AddReview(c.Request.Context(), claims.UserID, companyID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.NewReviewView(*review))
}

func (h *ReviewHandler) Like(c *gin.Context)    { h.react(c, true) }
func (h *ReviewHandler) Dislike(c *gin.Context) { h.react(c, false) }

func (h *ReviewHandler) react(c *gin.Context, like bool) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, services.ErrReviewNotExists)
		return
	}
	review, err := h.ReviewService.React(c.Request.Context(), id, like)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewReviewView(*review))
}
