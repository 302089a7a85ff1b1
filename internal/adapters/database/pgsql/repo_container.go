package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository facade against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		WalletRepo:       newPgxWalletRepository(dbPool),
		RequestRepo:      newPgxRequestRepository(dbPool),
		VehicleRepo:      newPgxVehicleRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
