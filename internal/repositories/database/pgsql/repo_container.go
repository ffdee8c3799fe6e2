package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgsql-backed repositories sharing one
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Transaction: newPgxTransactionRepository(pool),
		Reference:   newPgxConfigRepository(pool),
	}
}
