package dtos

import (
	"time"

	"github.com/justsurfingit/job-board/internal/models"
)

type ReviewRequest struct {
	Text string `json:"text" binding:"required,max=800"`
}

type ReviewView struct {
	ID             uint      `json:"id"`
	CompanyID      uint      `json:"company_id"`
	Username       string    `json:"username"`
	Text           string    `json:"text"`
	LikesCounter   uint      `json:"likes_counter"`
	DislikeCounter uint      `json:"dislike_counter"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewReviewView(r models.Review) ReviewView {
	return ReviewView{
		ID:             r.ID,
		CompanyID:      r.CompanyID,
		Username:       r.User.Username,
		Text:           r.Text,
		LikesCounter:   r.LikesCounter,
		DislikeCounter: r.DislikeCounter,
		CreatedAt:      r.CreatedAt,
	}
}

func NewReviewList(reviews []models.Review) []ReviewView {
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewView(r))
	}
	return out
}
