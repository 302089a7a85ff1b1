package services

// ServiceContainer aggregates all service facades for route registration.
type ServiceContainer struct {
	Auth         AuthSvcFacade
	Wallet       WalletSvcFacade
	Request      RequestSvcFacade
	Transporter  TransporterSvcFacade
	Vehicle      VehicleSvcFacade
	Notification NotificationSvcFacade
}
