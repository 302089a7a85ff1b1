package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string, includeDeleted bool) (*domain.User, error) {
	args := m.Called(ctx, userID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListPendingTransporters(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkTransporterApproved(ctx context.Context, transporterID string, approvedBy string, approvedAt time.Time) error {
	args := m.Called(ctx, transporterID, approvedBy, approvedAt)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDeleteUser(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

func (m *MockUserRepository) RestoreUser(ctx context.Context, userID string, restoredBy string, now time.Time) error {
	args := m.Called(ctx, userID, restoredBy, now)
	return args.Error(0)
}

// --- Mock WalletRepository ---

type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindOrCreateWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListEntriesByWallet(ctx context.Context, walletID string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, walletID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListAllEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletRepository) Credit(ctx context.Context, walletID string, entry domain.LedgerEntry) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID, entry)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepository) Debit(ctx context.Context, walletID string, entry domain.LedgerEntry) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID, entry)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RequestRepository ---

type MockRequestRepository struct {
	mock.Mock
}

var _ portsrepo.RequestRepositoryFacade = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string, includeDeleted bool) (*domain.TransportRequest, error) {
	args := m.Called(ctx, requestID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransportRequest), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, filter portsrepo.RequestFilter) ([]domain.TransportRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransportRequest), args.Error(1)
}

func (m *MockRequestRepository) ListStatusHistory(ctx context.Context, requestID string) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}

func (m *MockRequestRepository) SaveRequest(ctx context.Context, request domain.TransportRequest, escrow *portsrepo.EscrowDebit, notifications []domain.Notification) error {
	args := m.Called(ctx, request, escrow, notifications)
	return args.Error(0)
}

func (m *MockRequestRepository) AssignTransporter(ctx context.Context, requestID string, transporterID string, history domain.StatusHistoryEntry) (*domain.TransportRequest, error) {
	args := m.Called(ctx, requestID, transporterID, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransportRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, requestID string, history domain.StatusHistoryEntry) (*domain.TransportRequest, error) {
	args := m.Called(ctx, requestID, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransportRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateRequest(ctx context.Context, request domain.TransportRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) SoftDeleteRequest(ctx context.Context, requestID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, requestID, deletedBy, now)
	return args.Error(0)
}

func (m *MockRequestRepository) RestoreRequest(ctx context.Context, requestID string, restoredBy string, now time.Time) error {
	args := m.Called(ctx, requestID, restoredBy, now)
	return args.Error(0)
}

func (m *MockRequestRepository) HardDeleteRequest(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// --- Mock VehicleRepository ---

type MockVehicleRepository struct {
	mock.Mock
}

var _ portsrepo.VehicleRepositoryFacade = (*MockVehicleRepository)(nil)

func (m *MockVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string, includeDeleted bool) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) SoftDeleteVehicle(ctx context.Context, vehicleID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, vehicleID, deletedBy, now)
	return args.Error(0)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID string, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock NotificationService ---

type MockNotificationService struct {
	mock.Mock
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

func (m *MockNotificationService) Notify(ctx context.Context, userID string, title string, message string, kind domain.NotificationKind) {
	m.Called(ctx, userID, title, message, kind)
}

func (m *MockNotificationService) ListMine(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock MailSender ---

type MockMailSender struct {
	mock.Mock
}

var _ portssvc.MailSender = (*MockMailSender)(nil)

func (m *MockMailSender) Send(ctx context.Context, template portssvc.MailTemplate, recipient string, data map[string]string) error {
	args := m.Called(ctx, template, recipient, data)
	return args.Error(0)
}

// --- Mock DocumentStore ---

type MockDocumentStore struct {
	mock.Mock
}

var _ portssvc.DocumentStore = (*MockDocumentStore)(nil)

func (m *MockDocumentStore) Attach(ctx context.Context, ownerRef string, blob []byte, metadata map[string]string) (string, error) {
	args := m.Called(ctx, ownerRef, blob, metadata)
	return args.String(0), args.Error(1)
}
