package dtos

import (
	"time"

	"github.com/justsurfingit/job-board/internal/models"
)

type ApplyRequest struct {
	CoverNote   string `json:"cover_note" binding:"max=500"`
	UserPhone   string `json:"user_phone" binding:"required,max=30"`
	SummaryLink string `json:"summary_link" binding:"omitempty,url,max=255"`
}

type UpdateResponseStatusRequest struct {
	Status string `json:"status" binding:"required,max=30"`
}

type ResponseView struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	VacancyID   uint      `json:"vacancy_id"`
	CoverNote   string    `json:"cover_note"`
	UserPhone   string    `json:"user_phone"`
	SummaryLink string    `json:"summary_link"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponseView(r models.Response) ResponseView {
	return ResponseView{
		ID:          r.ID,
		UserID:      r.UserID,
		VacancyID:   r.VacancyID,
		CoverNote:   r.CoverNote,
		UserPhone:   r.UserPhone,
		SummaryLink: r.SummaryLink,
		Status:      r.ResponseStatus.Name,
		CreatedAt:   r.CreatedAt,
	}
}

func NewResponseList(responses []models.Response) []ResponseView {
	out := make([]ResponseView, 0, len(responses))
	for _, r := range responses {
		out = append(out, NewResponseView(r))
	}
	return out
}
