// AngelaMos | 2026
// fake_test.go

package opinion

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/carterperez-dev/school-opinions/internal/core"
)

type fakeAccount struct {
	name, surname, document string
}

type fakeComment struct {
	id        int64
	opinionID int64
	detail    string
}

// fakeRepo keeps comments append-only and returns one row per comment, so
// reads exercise Collapse the way a non-aggregated join would.
type fakeRepo struct {
	mu       sync.Mutex
	accounts map[int64]fakeAccount
	opinions []Opinion
	comments []fakeComment
	nextID   int64
	nextCID  int64
	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: map[int64]fakeAccount{
			1: {name: "Ana", surname: "Pérez", document: "0102030405"},
			2: {name: "Luis", surname: "Mora", document: "0911122233"},
		},
	}
}

func (f *fakeRepo) Create(_ context.Context, o *Opinion) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return fmt.Errorf("create opinion: %w", f.failWith)
	}
	if _, ok := f.accounts[o.AccountID]; !ok {
		return fmt.Errorf("create opinion: unknown account: %w", core.ErrInvalidInput)
	}

	f.nextID++
	o.ID = f.nextID
	f.opinions = append(f.opinions, *o)
	return nil
}

func (f *fakeRepo) UpdateLifecycle(
	_ context.Context,
	id int64,
	status Status,
	comment string,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return fmt.Errorf("update opinion status: %w", f.failWith)
	}

	for i := range f.opinions {
		if f.opinions[i].ID == id {
			f.opinions[i].Status = status
			f.nextCID++
			f.comments = append(f.comments, fakeComment{
				id:        f.nextCID,
				opinionID: id,
				detail:    comment,
			})
			return nil
		}
	}

	return fmt.Errorf("update opinion status: %w", core.ErrNotFound)
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, fmt.Errorf("list opinions: %w", f.failWith)
	}

	var rows []Row
	for _, o := range f.opinions {
		if filter.Category != 0 && o.Category != filter.Category {
			continue
		}
		if filter.Status != 0 && o.Status != filter.Status {
			continue
		}
		if filter.AccountID != 0 && o.AccountID != filter.AccountID {
			continue
		}

		base := f.baseRow(o)
		emitted := false
		for _, c := range f.comments {
			if c.opinionID != o.ID {
				continue
			}
			row := base
			row.Comment = c.detail
			rows = append(rows, row)
			emitted = true
		}
		if !emitted {
			rows = append(rows, base)
		}
	}

	return rows, nil
}

func (f *fakeRepo) Totals(_ context.Context) (Totals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return Totals{}, fmt.Errorf("count opinions: %w", f.failWith)
	}

	var t Totals
	for _, o := range f.opinions {
		switch {
		case o.Category == CategorySuggestion && o.Status == StatusOpen:
			t.SuggestionsOpen++
		case o.Category == CategorySuggestion:
			t.SuggestionsClosed++
		case o.Status == StatusOpen:
			t.ComplaintsOpen++
		default:
			t.ComplaintsClosed++
		}
	}
	t.Complaints = t.ComplaintsOpen + t.ComplaintsClosed
	t.Suggestions = t.SuggestionsOpen + t.SuggestionsClosed

	return t, nil
}

func (f *fakeRepo) Report(ctx context.Context, filter Filter) ([]Row, Totals, error) {
	rows, err := f.List(ctx, filter)
	if err != nil {
		return nil, Totals{}, err
	}
	totals, err := f.Totals(ctx)
	if err != nil {
		return nil, Totals{}, err
	}
	return rows, totals, nil
}

func (f *fakeRepo) baseRow(o Opinion) Row {
	acc := f.accounts[o.AccountID]
	accountID := o.AccountID
	return Row{
		ID:          o.ID,
		Category:    o.Category,
		Description: o.Description,
		Status:      o.Status,
		AccountID:   &accountID,
		Name:        acc.name,
		Surname:     acc.surname,
		Document:    acc.document,
		CreatedAt:   o.CreatedAt,
	}
}

func (f *fakeRepo) opinion(id int64) (Opinion, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.opinions {
		if o.ID == id {
			return o, true
		}
	}
	return Opinion{}, false
}

var errStoreDown = errors.New("connection refused")
