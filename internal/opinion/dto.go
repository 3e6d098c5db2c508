// AngelaMos | 2026
// dto.go

package opinion

import (
	"strings"
	"time"
)

// RegisterRequest is the body of an opinion submission. Any status sent by
// the client is ignored.
type RegisterRequest struct {
	Details     string `json:"details"     validate:"required,max=200"`
	Type        string `json:"type"`
	UserID      int64  `json:"userID"      validate:"required,gt=0"`
	CreatedDate string `json:"createdDate"`
}

var createdDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseCreatedDate accepts the date forms browsers and forms send. An empty
// or unreadable value returns the zero time, which the service replaces with
// the current time.
func parseCreatedDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range createdDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return time.Time{}
}

type UpdateRequest struct {
	OpinionID int64  `json:"opinion_ID" validate:"required,gt=0"`
	Comment   string `json:"comment"    validate:"max=1000"`
	Status    string `json:"status"`
}

type RegisterInput struct {
	Description string
	Category    Category
	AccountID   int64
	CreatedAt   time.Time
}

type UpdateInput struct {
	OpinionID int64
	Status    Status
	Comment   string
}

type OpinionResponse struct {
	ID            int64     `json:"id"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"categoryLabel"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	UserID        *int64    `json:"userID"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	Document      string    `json:"document"`
	CreatedDate   time.Time `json:"createdDate"`
	Comment       string    `json:"comment"`
}

type ReportResponse struct {
	Opinions []OpinionResponse `json:"opinions"`
	Totals   Totals            `json:"totals"`
}

func (r RegisterRequest) toInput() RegisterInput {
	return RegisterInput{
		Description: r.Details,
		Category:    ParseCategory(r.Type),
		AccountID:   r.UserID,
		CreatedAt:   parseCreatedDate(r.CreatedDate),
	}
}

func (r UpdateRequest) toInput() UpdateInput {
	return UpdateInput{
		OpinionID: r.OpinionID,
		Status:    ParseStatusLabel(r.Status),
		Comment:   r.Comment,
	}
}

func ToOpinionResponse(r Row) OpinionResponse {
	return OpinionResponse{
		ID:            r.ID,
		Category:      r.Category.String(),
		CategoryLabel: r.Category.Label(),
		Description:   r.Description,
		Status:        r.Status.Label(),
		UserID:        r.AccountID,
		Name:          r.Name,
		Surname:       r.Surname,
		Document:      r.Document,
		CreatedDate:   r.CreatedAt,
		Comment:       r.Comment,
	}
}

func ToOpinionResponseList(rows []Row) []OpinionResponse {
	responses := make([]OpinionResponse, 0, len(rows))
	for _, r := range rows {
		responses = append(responses, ToOpinionResponse(r))
	}
	return responses
}
