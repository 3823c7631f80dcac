package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterIDs struct{ n int }

func (c *counterIDs) NewID() (string, error) {
	c.n++
	return fmt.Sprintf("loan-%d", c.n), nil
}

func TestLoansSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "circulation.db")
	day := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	ids := &counterIDs{}
	opts := []memory.LoanOption{
		memory.WithClock(func() time.Time { return day }),
		memory.WithIDGenerator(ids),
	}

	repo, err := NewLoanRepository(ctx, path, opts...)
	require.NoError(t, err)
	first, err := repo.CreateLoan(ctx, "book-1", "Ana", 10)
	require.NoError(t, err)
	second, err := repo.CreateLoan(ctx, "book-2", "Bob", 7)
	require.NoError(t, err)
	_, err = repo.MarkReturned(ctx, first.LoanID, day.AddDate(0, 0, 12))
	require.NoError(t, err)
	_, err = repo.MarkFinePaid(ctx, first.LoanID)
	require.NoError(t, err)
	third, err := repo.CreateLoan(ctx, "book-1", "Caio", 10)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewLoanRepository(ctx, path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	all, err := reopened.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{first.LoanID, second.LoanID, third.LoanID},
		[]string{all[0].LoanID, all[1].LoanID, all[2].LoanID})

	got := all[0]
	require.NotNil(t, got.ReturnDate)
	assert.Equal(t, time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), *got.ReturnDate)
	assert.True(t, got.FinePaid)
	assert.Equal(t, 7, all[1].TermDays)
	assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), all[1].DueDate)

	_, err = reopened.CreateLoan(ctx, "book-1", "Dora", 10)
	assert.ErrorIs(t, err, apperrors.ErrItemAlreadyOnLoan)
}

func TestDeletedLoanIsGoneAfterReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "circulation.db")

	repo, err := NewLoanRepository(ctx, path)
	require.NoError(t, err)
	loan, err := repo.CreateLoan(ctx, "book-1", "Ana", 10)
	require.NoError(t, err)
	_, err = repo.MarkReturned(ctx, loan.LoanID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.DeleteLoan(ctx, loan.LoanID))
	require.NoError(t, repo.Close())

	reopened, err := NewLoanRepository(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	all, err := reopened.ListLoans(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestWriteFailureKeepsMemoryConsistent(t *testing.T) {
	ctx := context.Background()
	repo, err := NewLoanRepository(ctx, filepath.Join(t.TempDir(), "circulation.db"))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = repo.CreateLoan(ctx, "book-1", "Ana", 10)
	require.Error(t, err)
	onLoan, err := repo.IsItemOnLoan(ctx, "book-1")
	require.NoError(t, err)
	assert.False(t, onLoan)
}
