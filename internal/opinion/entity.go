// AngelaMos | 2026
// entity.go

package opinion

import (
	"time"
)

// Category is stored as the id of the opinion_categories lookup row.
type Category int16

const (
	CategoryComplaint  Category = 1
	CategorySuggestion Category = 2
)

// Status is stored as the id of the opinion_statuses lookup row.
type Status int16

const (
	StatusOpen   Status = 1
	StatusClosed Status = 2
)

const (
	LabelOpen   = "Abierto"
	LabelClosed = "Cerrado"

	MaxDescriptionLength = 200
)

// ParseCategory maps a submitted type to a category. Only the suggestion
// markers select CategorySuggestion; every other value is a complaint.
func ParseCategory(s string) Category {
	switch s {
	case "suggestion", "Sugerencia":
		return CategorySuggestion
	default:
		return CategoryComplaint
	}
}

// ParseStatusLabel maps a human readable status to a Status. Only "Abierto"
// means open; every other value closes the opinion.
func ParseStatusLabel(label string) Status {
	if label == LabelOpen {
		return StatusOpen
	}
	return StatusClosed
}

func (c Category) String() string {
	if c == CategorySuggestion {
		return "suggestion"
	}
	return "complaint"
}

func (c Category) Label() string {
	if c == CategorySuggestion {
		return "Sugerencia"
	}
	return "Queja"
}

func (s Status) Label() string {
	if s == StatusOpen {
		return LabelOpen
	}
	return LabelClosed
}

type Opinion struct {
	ID          int64     `db:"id"`
	Category    Category  `db:"category_id"`
	Description string    `db:"description"`
	AccountID   int64     `db:"account_id"`
	Status      Status    `db:"status_id"`
	CreatedAt   time.Time `db:"created_at"`
}

// Row is one opinion as read for reporting: the opinion, its submitter and
// the detail of its latest comment ("" when there is none).
type Row struct {
	ID          int64     `db:"id"`
	Category    Category  `db:"category_id"`
	Description string    `db:"description"`
	Status      Status    `db:"status_id"`
	AccountID   *int64    `db:"account_id"`
	Name        string    `db:"name"`
	Surname     string    `db:"surname"`
	Document    string    `db:"document"`
	CreatedAt   time.Time `db:"created_at"`
	Comment     string    `db:"comment"`
}

type Totals struct {
	Complaints        int `json:"totalComplaints"        db:"complaints"`
	ComplaintsOpen    int `json:"totalComplaintsOpen"    db:"complaints_open"`
	ComplaintsClosed  int `json:"totalComplaintsClosed"  db:"complaints_closed"`
	Suggestions       int `json:"totalSuggestions"       db:"suggestions"`
	SuggestionsOpen   int `json:"totalSuggestionsOpen"   db:"suggestions_open"`
	SuggestionsClosed int `json:"totalSuggestionsClosed" db:"suggestions_closed"`
}

func (t Totals) Total() int {
	return t.Complaints + t.Suggestions
}

// Consistent reports whether the open/closed splits add up to their
// category totals.
func (t Totals) Consistent() bool {
	return t.ComplaintsOpen+t.ComplaintsClosed == t.Complaints &&
		t.SuggestionsOpen+t.SuggestionsClosed == t.Suggestions
}

// Filter narrows report reads. Zero values mean "any".
type Filter struct {
	Category  Category
	Status    Status
	AccountID int64
}
