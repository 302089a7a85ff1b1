package services

import (
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
)

// NewContainer wires every service facade with its dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, mailSender portssvc.MailSender, docStore portssvc.DocumentStore, authCfg AuthConfig) *portssvc.ServiceContainer {
	notificationSvc := NewNotificationService(repos.NotificationRepo)

	return &portssvc.ServiceContainer{
		Auth:         NewAuthService(repos.UserRepo, authCfg),
		Wallet:       NewWalletService(repos.WalletRepo, repos.UserRepo),
		Request:      NewRequestService(repos.RequestRepo, repos.UserRepo, repos.WalletRepo, notificationSvc, docStore),
		Transporter:  NewTransporterService(repos.UserRepo, repos.VehicleRepo, notificationSvc, mailSender),
		Vehicle:      NewVehicleService(repos.VehicleRepo, repos.UserRepo),
		Notification: notificationSvc,
	}
}
