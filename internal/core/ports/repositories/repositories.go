package repositories

// RepositoryProvider aggregates all repository facades so that service
// construction takes a single dependency.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	WalletRepo       WalletRepositoryFacade
	RequestRepo      RequestRepositoryFacade
	VehicleRepo      VehicleRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
