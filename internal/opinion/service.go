// AngelaMos | 2026
// service.go

package opinion

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/school-opinions/internal/core"
)

const tracerName = "opinion"

type Report struct {
	Opinions []Row
	Totals   Totals
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Register stores a new opinion. The status is always open regardless of
// what the caller asked for.
func (s *Service) Register(ctx context.Context, in RegisterInput) (err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "opinion.Register",
		attribute.Int64("account.id", in.AccountID),
		attribute.String("opinion.category", in.Category.String()),
	)
	defer func() { core.EndSpan(span, err) }()

	if in.Description == "" {
		return core.ValidationError("description is required")
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
		return core.ValidationError(fmt.Sprintf(
			"description must be at most %d characters",
			MaxDescriptionLength,
		))
	}
	if in.AccountID <= 0 {
		return core.ValidationError("userID is required")
	}

	category := in.Category
	if category != CategorySuggestion {
		category = CategoryComplaint
	}

	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	o := &Opinion{
		Category:    category,
		Description: in.Description,
		AccountID:   in.AccountID,
		Status:      StatusOpen,
		CreatedAt:   createdAt,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return err
	}

	return nil
}

// Update applies a status change and replaces the opinion's comment. Any
// status may move to any status. Replaying the same update is harmless.
func (s *Service) Update(ctx context.Context, in UpdateInput) (err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "opinion.Update",
		attribute.Int64("opinion.id", in.OpinionID),
		attribute.String("opinion.status", in.Status.Label()),
	)
	defer func() { core.EndSpan(span, err) }()

	if in.OpinionID <= 0 {
		return core.ValidationError("opinion_ID is required")
	}

	status := in.Status
	if status != StatusOpen {
		status = StatusClosed
	}

	return s.repo.UpdateLifecycle(ctx, in.OpinionID, status, in.Comment)
}

// Report returns every matching opinion with the store-computed totals.
// Totals always cover all opinions, whatever the filter.
func (s *Service) Report(ctx context.Context, f Filter) (_ *Report, err error) {
	ctx, span := core.StartSpan(ctx, tracerName, "opinion.Report")
	defer func() { core.EndSpan(span, err) }()

	rows, totals, err := s.repo.Report(ctx, f)
	if err != nil {
		return nil, err
	}

	return &Report{
		Opinions: Collapse(rows),
		Totals:   totals,
	}, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Row, error) {
	rows, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return Collapse(rows), nil
}

func (s *Service) Totals(ctx context.Context) (Totals, error) {
	return s.repo.Totals(ctx)
}
