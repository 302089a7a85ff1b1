package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/core/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
)

type RequestServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockRequestRepository
	mockUserRepo    *MockUserRepository
	mockWalletRepo  *MockWalletRepository
	mockNotifSvc    *MockNotificationService
	mockDocStore    *MockDocumentStore
	service         portssvc.RequestSvcFacade

	client      domain.User
	admin       domain.User
	transporter domain.User
}

func (suite *RequestServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = new(MockRequestRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockNotifSvc = new(MockNotificationService)
	suite.mockDocStore = new(MockDocumentStore)
	suite.service = services.NewRequestService(
		suite.mockRequestRepo,
		suite.mockUserRepo,
		suite.mockWalletRepo,
		suite.mockNotifSvc,
		suite.mockDocStore,
	)

	suite.client = domain.User{
		UserID:    uuid.NewString(),
		FirstName: "Awa",
		LastName:  "Diop",
		Role:      domain.RolePME,
	}
	suite.admin = domain.User{
		UserID: uuid.NewString(),
		Role:   domain.RoleAdmin,
	}
	suite.transporter = domain.User{
		UserID:     uuid.NewString(),
		FirstName:  "Moussa",
		LastName:   "Ba",
		Role:       domain.RoleTransporteur,
		IsApproved: true,
	}
}

func (suite *RequestServiceTestSuite) expectActor(user domain.User) {
	u := user
	suite.mockUserRepo.On("FindUserByID", mock.Anything, user.UserID, false).Return(&u, nil)
}

func (suite *RequestServiceTestSuite) newCreatePayload() dto.CreateTransportRequestRequest {
	return dto.CreateTransportRequestRequest{
		Title:                  "Sacs de riz",
		MerchandiseDescription: "20 sacs de 50kg",
		Weight:                 decimal.NewFromInt(1000),
		Volume:                 decimal.NewFromInt(3),
		PickupAddress:          "Marché central",
		PickupCity:             "Thiès",
		DeliveryAddress:        "Entrepôt 4",
		DeliveryCity:           "Dakar",
		PreferredPickupDate:    time.Now().Add(48 * time.Hour),
		RecipientName:          "Omar Sall",
		RecipientPhone:         "770000000",
	}
}

func (suite *RequestServiceTestSuite) pendingRequest(clientID string) *domain.TransportRequest {
	return &domain.TransportRequest{
		RequestID:  uuid.NewString(),
		ClientID:   clientID,
		Title:      "Sacs de riz",
		PickupCity: "Thiès", DeliveryCity: "Dakar",
		Status:           domain.StatusPending,
		Priority:         domain.PriorityNormal,
		SoftDeleteFields: domain.SoftDeleteFields{IsActive: true},
	}
}

// --- CreateRequest ---

func (suite *RequestServiceTestSuite) TestCreateRequest_WithoutPrice() {
	ctx := context.Background()
	suite.expectActor(suite.client)
	suite.mockUserRepo.On("ListUsersByRoles", mock.Anything, mock.AnythingOfType("[]domain.Role")).
		Return([]domain.User{suite.admin}, nil).Once()
	suite.mockRequestRepo.On("SaveRequest", mock.Anything, mock.AnythingOfType("domain.TransportRequest"), (*portsrepo.EscrowDebit)(nil), mock.AnythingOfType("[]domain.Notification")).
		Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, suite.client.UserID, suite.newCreatePayload())

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.StatusPending, created.Status)
	suite.Equal(domain.MerchandiseGeneral, created.MerchandiseType)
	suite.Equal(domain.PriorityNormal, created.Priority)
	suite.Equal(suite.client.UserID, created.ClientID)
	suite.True(created.IsActive)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "FindOrCreateWalletByUserID", mock.Anything, mock.Anything)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestCreateRequest_WithEscrow() {
	ctx := context.Background()
	price := decimal.NewFromInt(50000)
	payload := suite.newCreatePayload()
	payload.EstimatedPrice = &price

	wallet := &domain.Wallet{WalletID: uuid.NewString(), UserID: suite.client.UserID, Balance: decimal.NewFromInt(80000), Currency: domain.DefaultCurrency}

	suite.expectActor(suite.client)
	suite.mockWalletRepo.On("FindOrCreateWalletByUserID", mock.Anything, suite.client.UserID).Return(wallet, nil).Once()
	suite.mockUserRepo.On("ListUsersByRoles", mock.Anything, mock.AnythingOfType("[]domain.Role")).
		Return([]domain.User{suite.admin}, nil).Once()
	suite.mockRequestRepo.On("SaveRequest", mock.Anything, mock.AnythingOfType("domain.TransportRequest"), mock.AnythingOfType("*repositories.EscrowDebit"), mock.AnythingOfType("[]domain.Notification")).
		Run(func(args mock.Arguments) {
			escrow := args.Get(2).(*portsrepo.EscrowDebit)
			suite.Equal(wallet.WalletID, escrow.WalletID)
			suite.Equal(domain.EntryDebit, escrow.Entry.Type)
			suite.True(escrow.Entry.Amount.Equal(price))
			notifications := args.Get(3).([]domain.Notification)
			suite.Len(notifications, 1)
			suite.Equal(suite.admin.UserID, notifications[0].UserID)
			suite.Equal(domain.NotificationNewRequest, notifications[0].Kind)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateRequest(ctx, suite.client.UserID, payload)

	suite.Require().NoError(err)
	suite.Require().NotNil(created.EstimatedPrice)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestCreateRequest_InsufficientFunds() {
	ctx := context.Background()
	price := decimal.NewFromInt(50000)
	payload := suite.newCreatePayload()
	payload.EstimatedPrice = &price

	wallet := &domain.Wallet{WalletID: uuid.NewString(), UserID: suite.client.UserID, Balance: decimal.NewFromInt(100)}

	suite.expectActor(suite.client)
	suite.mockWalletRepo.On("FindOrCreateWalletByUserID", mock.Anything, suite.client.UserID).Return(wallet, nil).Once()

	_, err := suite.service.CreateRequest(ctx, suite.client.UserID, payload)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestCreateRequest_Validation() {
	ctx := context.Background()
	suite.expectActor(suite.client)

	payload := suite.newCreatePayload()
	payload.Weight = decimal.Zero
	_, err := suite.service.CreateRequest(ctx, suite.client.UserID, payload)
	suite.ErrorIs(err, apperrors.ErrValidation)

	payload = suite.newCreatePayload()
	payload.Volume = decimal.NewFromInt(-1)
	_, err = suite.service.CreateRequest(ctx, suite.client.UserID, payload)
	suite.ErrorIs(err, apperrors.ErrValidation)

	payload = suite.newCreatePayload()
	payload.PreferredPickupDate = time.Now().Add(-time.Hour)
	_, err = suite.service.CreateRequest(ctx, suite.client.UserID, payload)
	suite.ErrorIs(err, apperrors.ErrValidation)

	payload = suite.newCreatePayload()
	payload.IsRecurring = true
	_, err = suite.service.CreateRequest(ctx, suite.client.UserID, payload)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RequestServiceTestSuite) TestCreateRequest_TransporterForbidden() {
	ctx := context.Background()
	suite.expectActor(suite.transporter)

	_, err := suite.service.CreateRequest(ctx, suite.transporter.UserID, suite.newCreatePayload())

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Assign ---

func (suite *RequestServiceTestSuite) TestAssign_TransporterSelfAssigns() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	updated := *request
	updated.Status = domain.StatusAssigned
	updated.AssignedTransporterID = &suite.transporter.UserID

	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("AssignTransporter", mock.Anything, request.RequestID, suite.transporter.UserID, mock.AnythingOfType("domain.StatusHistoryEntry")).
		Run(func(args mock.Arguments) {
			history := args.Get(3).(domain.StatusHistoryEntry)
			suite.Equal(domain.StatusPending, history.OldStatus)
			suite.Equal(domain.StatusAssigned, history.NewStatus)
			suite.Contains(history.Comment, "Transporteur assigné")
		}).
		Return(&updated, nil).Once()
	suite.mockNotifSvc.On("Notify", mock.Anything, suite.transporter.UserID, mock.Anything, mock.Anything, domain.NotificationAssignedMission).Once()

	// A supplied reference is ignored for transporter actors.
	other := uuid.NewString()
	result, err := suite.service.Assign(ctx, suite.transporter.UserID, request.RequestID, &other)

	suite.Require().NoError(err)
	suite.Equal(suite.transporter.UserID, *result.AssignedTransporterID)
	suite.mockRequestRepo.AssertExpectations(suite.T())
	suite.mockNotifSvc.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestAssign_AdminNamesTransporter() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	updated := *request
	updated.Status = domain.StatusAssigned
	updated.AssignedTransporterID = &suite.transporter.UserID

	suite.expectActor(suite.admin)
	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("AssignTransporter", mock.Anything, request.RequestID, suite.transporter.UserID, mock.AnythingOfType("domain.StatusHistoryEntry")).
		Return(&updated, nil).Once()
	suite.mockNotifSvc.On("Notify", mock.Anything, suite.transporter.UserID, mock.Anything, mock.Anything, domain.NotificationAssignedMission).Once()

	result, err := suite.service.Assign(ctx, suite.admin.UserID, request.RequestID, &suite.transporter.UserID)

	suite.Require().NoError(err)
	suite.Equal(suite.transporter.UserID, *result.AssignedTransporterID)
}

func (suite *RequestServiceTestSuite) TestAssign_AdminWithoutTransporterID() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)

	suite.expectActor(suite.admin)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.Assign(ctx, suite.admin.UserID, request.RequestID, nil)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RequestServiceTestSuite) TestAssign_UnvettedTransporterForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	unvetted := suite.transporter
	unvetted.IsApproved = false

	suite.expectActor(unvetted)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.Assign(ctx, unvetted.UserID, request.RequestID, nil)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "AssignTransporter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestAssign_AdminNamesUnvettedTransporter() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	unvetted := suite.transporter
	unvetted.IsApproved = false

	suite.expectActor(suite.admin)
	suite.expectActor(unvetted)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.Assign(ctx, suite.admin.UserID, request.RequestID, &unvetted.UserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RequestServiceTestSuite) TestAssign_AlreadyAssigned() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	someone := uuid.NewString()
	request.AssignedTransporterID = &someone
	request.Status = domain.StatusAssigned

	suite.expectActor(suite.admin)
	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.Assign(ctx, suite.admin.UserID, request.RequestID, &suite.transporter.UserID)

	suite.ErrorIs(err, apperrors.ErrAlreadyAssigned)
}

func (suite *RequestServiceTestSuite) TestAssign_LostRace() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)

	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("AssignTransporter", mock.Anything, request.RequestID, suite.transporter.UserID, mock.AnythingOfType("domain.StatusHistoryEntry")).
		Return(nil, apperrors.ErrAlreadyAssigned).Once()

	_, err := suite.service.Assign(ctx, suite.transporter.UserID, request.RequestID, nil)

	suite.ErrorIs(err, apperrors.ErrAlreadyAssigned)
	suite.mockNotifSvc.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ChangeStatus ---

func (suite *RequestServiceTestSuite) TestChangeStatus_TransporterStartsMission() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusAssigned
	request.AssignedTransporterID = &suite.transporter.UserID
	updated := *request
	updated.Status = domain.StatusInProgress

	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("UpdateStatus", mock.Anything, request.RequestID, mock.AnythingOfType("domain.StatusHistoryEntry")).
		Return(&updated, nil).Once()

	result, err := suite.service.ChangeStatus(ctx, suite.transporter.UserID, request.RequestID, domain.StatusInProgress, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusInProgress, result.Status)
}

func (suite *RequestServiceTestSuite) TestChangeStatus_TransporterCannotCancel() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusAssigned
	request.AssignedTransporterID = &suite.transporter.UserID

	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.transporter.UserID, request.RequestID, domain.StatusCancelled, "")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RequestServiceTestSuite) TestChangeStatus_NotAssignedTransporter() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusAssigned
	someone := uuid.NewString()
	request.AssignedTransporterID = &someone

	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.transporter.UserID, request.RequestID, domain.StatusInProgress, "")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RequestServiceTestSuite) TestChangeStatus_AdminCancelsAssigned() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusAssigned
	request.AssignedTransporterID = &suite.transporter.UserID
	updated := *request
	updated.Status = domain.StatusCancelled
	updated.AssignedTransporterID = nil

	suite.expectActor(suite.admin)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("UpdateStatus", mock.Anything, request.RequestID, mock.MatchedBy(func(entry domain.StatusHistoryEntry) bool {
		return entry.OldStatus == domain.StatusAssigned &&
			entry.NewStatus == domain.StatusCancelled &&
			entry.ChangedBy == suite.admin.UserID
	})).Return(&updated, nil).Once()

	result, err := suite.service.ChangeStatus(ctx, suite.admin.UserID, request.RequestID, domain.StatusCancelled, "client unreachable")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, result.Status)
	suite.Nil(result.AssignedTransporterID)
}

func (suite *RequestServiceTestSuite) TestChangeStatus_Terminal() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusDelivered

	suite.expectActor(suite.admin)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.admin.UserID, request.RequestID, domain.StatusCancelled, "")

	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
}

func (suite *RequestServiceTestSuite) TestChangeStatus_InvalidTransition() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)

	suite.expectActor(suite.admin)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.ChangeStatus(ctx, suite.admin.UserID, request.RequestID, domain.StatusDelivered, "")

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

// --- Cancel ---

func (suite *RequestServiceTestSuite) TestCancel_OwnerWithDefaultReason() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	updated := *request
	updated.Status = domain.StatusCancelled

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("UpdateStatus", mock.Anything, request.RequestID, mock.AnythingOfType("domain.StatusHistoryEntry")).
		Run(func(args mock.Arguments) {
			history := args.Get(2).(domain.StatusHistoryEntry)
			suite.Equal(domain.StatusCancelled, history.NewStatus)
			suite.Equal("Annulée par le client", history.Comment)
		}).
		Return(&updated, nil).Once()

	result, err := suite.service.Cancel(ctx, suite.client.UserID, request.RequestID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, result.Status)
}

func (suite *RequestServiceTestSuite) TestCancel_InProgress() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusInProgress
	request.AssignedTransporterID = &suite.transporter.UserID

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.Cancel(ctx, suite.client.UserID, request.RequestID, "changed my mind")

	suite.ErrorIs(err, apperrors.ErrCannotCancelInProgress)
}

func (suite *RequestServiceTestSuite) TestCancel_Terminal() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusCancelled

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.Cancel(ctx, suite.client.UserID, request.RequestID, "")

	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
}

func (suite *RequestServiceTestSuite) TestCancel_ForeignClientForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest(uuid.NewString())

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.Cancel(ctx, suite.client.UserID, request.RequestID, "")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Remove / Restore ---

func (suite *RequestServiceTestSuite) TestRemove_Owner() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("SoftDeleteRequest", mock.Anything, request.RequestID, suite.client.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.Remove(ctx, suite.client.UserID, request.RequestID)

	suite.Require().NoError(err)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestRemove_InProgress() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusInProgress
	request.AssignedTransporterID = &suite.transporter.UserID

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	err := suite.service.Remove(ctx, suite.client.UserID, request.RequestID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "SoftDeleteRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestRestore_AdminOnly() {
	ctx := context.Background()
	requestID := uuid.NewString()

	suite.expectActor(suite.client)
	err := func() error {
		_, err := suite.service.Restore(ctx, suite.client.UserID, requestID)
		return err
	}()
	suite.ErrorIs(err, apperrors.ErrForbidden)

	restored := suite.pendingRequest(suite.client.UserID)
	restored.RequestID = requestID
	suite.expectActor(suite.admin)
	suite.mockRequestRepo.On("RestoreRequest", mock.Anything, requestID, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, requestID, false).Return(restored, nil).Once()

	result, err := suite.service.Restore(ctx, suite.admin.UserID, requestID)

	suite.Require().NoError(err)
	suite.True(result.IsActive)
}

func (suite *RequestServiceTestSuite) TestPurge_DeletedRequest() {
	ctx := context.Background()
	deleted := suite.pendingRequest(suite.client.UserID)
	deleted.IsActive = false
	now := time.Now()
	deleted.DeletedAt = &now

	suite.expectActor(suite.admin)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, deleted.RequestID, true).Return(deleted, nil).Once()
	suite.mockRequestRepo.On("HardDeleteRequest", mock.Anything, deleted.RequestID).Return(nil).Once()

	err := suite.service.Purge(ctx, suite.admin.UserID, deleted.RequestID)

	suite.NoError(err)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestPurge_ActiveRequestRejected() {
	ctx := context.Background()
	active := suite.pendingRequest(suite.client.UserID)

	suite.expectActor(suite.admin)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, active.RequestID, true).Return(active, nil).Once()

	err := suite.service.Purge(ctx, suite.admin.UserID, active.RequestID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "HardDeleteRequest")
}

func (suite *RequestServiceTestSuite) TestPurge_ClientForbidden() {
	ctx := context.Background()

	suite.expectActor(suite.client)

	err := suite.service.Purge(ctx, suite.client.UserID, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "HardDeleteRequest")
}

// --- Listings ---

func (suite *RequestServiceTestSuite) TestListRequests_ClientScopedToOwn() {
	ctx := context.Background()
	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("ListRequests", mock.Anything, mock.MatchedBy(func(f portsrepo.RequestFilter) bool {
		return f.ClientID == suite.client.UserID && !f.IncludeDeleted
	})).Return([]domain.TransportRequest{}, nil).Once()

	// includeDeleted is stripped for non-privileged callers.
	_, err := suite.service.ListRequests(ctx, suite.client.UserID, dto.ListRequestsParams{IncludeDeleted: true})

	suite.Require().NoError(err)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestListRequests_TransporterMarketplaceView() {
	ctx := context.Background()
	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("ListRequests", mock.Anything, mock.MatchedBy(func(f portsrepo.RequestFilter) bool {
		return f.VisibleToTransporter == suite.transporter.UserID
	})).Return([]domain.TransportRequest{}, nil).Once()

	_, err := suite.service.ListRequests(ctx, suite.transporter.UserID, dto.ListRequestsParams{})

	suite.Require().NoError(err)
}

func (suite *RequestServiceTestSuite) TestListRequests_UnvettedTransporter() {
	ctx := context.Background()
	unvetted := suite.transporter
	unvetted.IsApproved = false
	suite.expectActor(unvetted)

	_, err := suite.service.ListRequests(ctx, unvetted.UserID, dto.ListRequestsParams{})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RequestServiceTestSuite) TestListAvailableRequests() {
	ctx := context.Background()
	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("ListRequests", mock.Anything, mock.MatchedBy(func(f portsrepo.RequestFilter) bool {
		return f.AvailableOnly && !f.IncludeDeleted
	})).Return([]domain.TransportRequest{}, nil).Once()

	_, err := suite.service.ListAvailableRequests(ctx, suite.transporter.UserID, dto.ListRequestsParams{})

	suite.Require().NoError(err)
}

func (suite *RequestServiceTestSuite) TestListRequests_BadStatusParam() {
	ctx := context.Background()
	suite.expectActor(suite.admin)

	_, err := suite.service.ListRequests(ctx, suite.admin.UserID, dto.ListRequestsParams{Status: "FLYING"})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetRequest visibility ---

func (suite *RequestServiceTestSuite) TestGetRequest_TransporterCannotSeeForeignMission() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusAssigned
	someone := uuid.NewString()
	request.AssignedTransporterID = &someone

	suite.expectActor(suite.transporter)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.GetRequest(ctx, suite.transporter.UserID, request.RequestID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *RequestServiceTestSuite) TestGetRequest_ModeratorSeesAll() {
	ctx := context.Background()
	moderator := domain.User{UserID: uuid.NewString(), Role: domain.RoleModerator}
	request := suite.pendingRequest(suite.client.UserID)

	suite.expectActor(moderator)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	result, err := suite.service.GetRequest(ctx, moderator.UserID, request.RequestID)

	suite.Require().NoError(err)
	suite.Equal(request.RequestID, result.RequestID)
}

// --- UpdateRequest ---

func (suite *RequestServiceTestSuite) TestUpdateRequest_PartialFields() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Weight = decimal.NewFromInt(1000)

	newTitle := "Sacs de riz et mil"
	urgent := string(domain.PriorityUrgent)

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockRequestRepo.On("UpdateRequest", mock.Anything, mock.MatchedBy(func(r domain.TransportRequest) bool {
		return r.Title == newTitle && r.Priority == domain.PriorityUrgent && r.Weight.Equal(decimal.NewFromInt(1000))
	})).Return(nil).Once()

	result, err := suite.service.UpdateRequest(ctx, suite.client.UserID, request.RequestID, dto.UpdateTransportRequestRequest{
		Title:    &newTitle,
		Priority: &urgent,
	})

	suite.Require().NoError(err)
	suite.Equal(newTitle, result.Title)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestUpdateRequest_Terminal() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	request.Status = domain.StatusDelivered

	newTitle := "too late"
	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()

	_, err := suite.service.UpdateRequest(ctx, suite.client.UserID, request.RequestID, dto.UpdateTransportRequestRequest{Title: &newTitle})

	suite.ErrorIs(err, apperrors.ErrAlreadyTerminal)
}

// --- AttachDocument ---

func (suite *RequestServiceTestSuite) TestAttachDocument() {
	ctx := context.Background()
	request := suite.pendingRequest(suite.client.UserID)
	blob := []byte("facture")

	suite.expectActor(suite.client)
	suite.mockRequestRepo.On("FindRequestByID", mock.Anything, request.RequestID, false).Return(request, nil).Once()
	suite.mockDocStore.On("Attach", mock.Anything, request.RequestID, blob, mock.Anything).Return("docs/abc", nil).Once()

	ref, err := suite.service.AttachDocument(ctx, suite.client.UserID, request.RequestID, blob, map[string]string{"name": "facture.pdf"})

	suite.Require().NoError(err)
	suite.Equal("docs/abc", ref)
}

func TestRequestService(t *testing.T) {
	suite.Run(t, new(RequestServiceTestSuite))
}
