// AngelaMos | 2026
// service_test.go

package opinion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/school-opinions/internal/core"
)

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestRegisterForcesOpenStatus(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	err := svc.Register(ctx, RegisterInput{
		Description: "Falta agua en los baños",
		Category:    CategorySuggestion,
		AccountID:   1,
	})
	require.NoError(t, err)

	o, ok := repo.opinion(1)
	require.True(t, ok)
	assert.Equal(t, StatusOpen, o.Status)
	assert.Equal(t, CategorySuggestion, o.Category)
	assert.Equal(t, svc.now(), o.CreatedAt)
}

func TestRegisterKeepsCallerTimestamp(t *testing.T) {
	svc, repo := newTestService()
	created := time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Register(context.Background(), RegisterInput{
		Description: "Ruido",
		AccountID:   1,
		CreatedAt:   created,
	}))

	o, _ := repo.opinion(1)
	assert.Equal(t, created, o.CreatedAt)
}

func TestRegisterUnknownCategoryIsComplaint(t *testing.T) {
	svc, repo := newTestService()

	require.NoError(t, svc.Register(context.Background(), RegisterInput{
		Description: "Ruido",
		Category:    Category(42),
		AccountID:   1,
	}))

	o, _ := repo.opinion(1)
	assert.Equal(t, CategoryComplaint, o.Category)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"empty description", RegisterInput{Description: "", AccountID: 1}},
		{"too long", RegisterInput{Description: strings.Repeat("a", 201), AccountID: 1}},
		{"missing account", RegisterInput{Description: "Ruido"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()

			err := svc.Register(context.Background(), tt.in)

			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
			assert.Empty(t, repo.opinions)
		})
	}
}

func TestRegisterOnlyRejectsEmptyDescription(t *testing.T) {
	svc, repo := newTestService()

	require.NoError(t, svc.Register(context.Background(), RegisterInput{
		Description: "   ",
		AccountID:   1,
	}))

	o, ok := repo.opinion(1)
	require.True(t, ok)
	assert.Equal(t, "   ", o.Description)
}

func TestRegisterAcceptsMaxLengthInRunes(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Register(context.Background(), RegisterInput{
		Description: strings.Repeat("ñ", MaxDescriptionLength),
		AccountID:   1,
	})

	assert.NoError(t, err)
}

func TestRegisterStoreFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.failWith = errStoreDown

	err := svc.Register(context.Background(), RegisterInput{
		Description: "Ruido",
		AccountID:   1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.False(t, core.IsAppError(err))
}

func TestUpdateRequiresID(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Update(context.Background(), UpdateInput{Status: StatusClosed})

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateUnknownOpinion(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Update(context.Background(), UpdateInput{
		OpinionID: 99,
		Status:    StatusClosed,
		Comment:   "x",
	})

	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateTransitionsBothWays(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, RegisterInput{Description: "Ruido", AccountID: 1}))

	require.NoError(t, svc.Update(ctx, UpdateInput{OpinionID: 1, Status: StatusClosed}))
	o, _ := repo.opinion(1)
	assert.Equal(t, StatusClosed, o.Status)

	require.NoError(t, svc.Update(ctx, UpdateInput{OpinionID: 1, Status: StatusOpen}))
	o, _ = repo.opinion(1)
	assert.Equal(t, StatusOpen, o.Status)
}

func TestReportLatestCommentWins(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, RegisterInput{Description: "Ruido", AccountID: 1}))

	for _, c := range []string{"Revisando", "En proceso", "Resuelto"} {
		require.NoError(t, svc.Update(ctx, UpdateInput{
			OpinionID: 1,
			Status:    StatusClosed,
			Comment:   c,
		}))
	}

	report, err := svc.Report(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, report.Opinions, 1)
	assert.Equal(t, "Resuelto", report.Opinions[0].Comment)
	assert.Equal(t, StatusClosed, report.Opinions[0].Status)
}

func TestReportRegisterThenClose(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	before, err := svc.Report(ctx, Filter{})
	require.NoError(t, err)

	require.NoError(t, svc.Register(ctx, RegisterInput{
		Description: "Ruido en el patio",
		Category:    ParseCategory("complaint"),
		AccountID:   1,
	}))

	afterRegister, err := svc.Report(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, before.Totals.Complaints+1, afterRegister.Totals.Complaints)
	assert.Equal(t, before.Totals.ComplaintsOpen+1, afterRegister.Totals.ComplaintsOpen)
	require.Len(t, afterRegister.Opinions, 1)
	entry := afterRegister.Opinions[0]
	assert.Equal(t, LabelOpen, entry.Status.Label())
	assert.Equal(t, "Ana", entry.Name)
	assert.Equal(t, "", entry.Comment)

	require.NoError(t, svc.Update(ctx, UpdateInput{
		OpinionID: entry.ID,
		Status:    ParseStatusLabel("Cerrado"),
		Comment:   "Resuelto",
	}))

	afterUpdate, err := svc.Report(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, afterUpdate.Opinions, 1)
	assert.Equal(t, LabelClosed, afterUpdate.Opinions[0].Status.Label())
	assert.Equal(t, "Resuelto", afterUpdate.Opinions[0].Comment)
	assert.Equal(t, afterRegister.Totals.ComplaintsOpen-1, afterUpdate.Totals.ComplaintsOpen)
	assert.Equal(t, afterRegister.Totals.ComplaintsClosed+1, afterUpdate.Totals.ComplaintsClosed)
	assert.Equal(t, afterRegister.Totals.Complaints, afterUpdate.Totals.Complaints)
}

func TestTotalsStayConsistentAcrossOperations(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	ops := []func() error{
		func() error {
			return svc.Register(ctx, RegisterInput{Description: "a", Category: CategoryComplaint, AccountID: 1})
		},
		func() error {
			return svc.Register(ctx, RegisterInput{Description: "b", Category: CategorySuggestion, AccountID: 2})
		},
		func() error {
			return svc.Register(ctx, RegisterInput{Description: "c", Category: CategorySuggestion, AccountID: 1})
		},
		func() error { return svc.Update(ctx, UpdateInput{OpinionID: 2, Status: StatusClosed, Comment: "ok"}) },
		func() error { return svc.Update(ctx, UpdateInput{OpinionID: 1, Status: StatusClosed, Comment: "x"}) },
		func() error { return svc.Update(ctx, UpdateInput{OpinionID: 1, Status: StatusOpen, Comment: "y"}) },
		func() error {
			return svc.Register(ctx, RegisterInput{Description: "d", Category: CategoryComplaint, AccountID: 2})
		},
	}

	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)

		report, err := svc.Report(ctx, Filter{})
		require.NoError(t, err)

		assert.True(t, report.Totals.Consistent(), "op %d", i)
		assert.Equal(t, len(report.Opinions), report.Totals.Total(), "op %d", i)
		assert.Equal(t, report.Totals, Tally(report.Opinions), "op %d", i)
	}
}

func TestReportFilterKeepsGlobalTotals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, RegisterInput{Description: "a", AccountID: 1}))
	require.NoError(t, svc.Register(ctx, RegisterInput{Description: "b", Category: CategorySuggestion, AccountID: 2}))

	report, err := svc.Report(ctx, Filter{AccountID: 2})
	require.NoError(t, err)

	require.Len(t, report.Opinions, 1)
	assert.Equal(t, "b", report.Opinions[0].Description)
	assert.Equal(t, 2, report.Totals.Total())
}

func TestReportStoreFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.failWith = errStoreDown

	_, err := svc.Report(context.Background(), Filter{})

	assert.True(t, errors.Is(err, errStoreDown))
}
