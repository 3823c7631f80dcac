package pgsql

import (
	portsrepo "github.com/SscSPs/library_circulation/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, loanOpts ...LoanRepoOption) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoanRepo:    newPgxLoanRepository(dbPool, loanOpts...),
		CatalogRepo: newPgxCatalogRepository(dbPool),
	}
}
