package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verdantclub/ClubWheelBot_Go/internal/database/postgres"
	"github.com/verdantclub/ClubWheelBot_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Account  repository.Account
	Ledger   repository.Ledger
	Transfer repository.Transfer
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Account:  postgres.NewAccountRepository(dbPool),
		Ledger:   postgres.NewLedgerRepository(dbPool),
		Transfer: postgres.NewTransferRepository(dbPool),
	}
}
