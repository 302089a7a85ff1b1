package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/core/services"
)

type TransporterServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockVehicleRepo *MockVehicleRepository
	mockNotifSvc    *MockNotificationService
	mockMailSender  *MockMailSender
	service         portssvc.TransporterSvcFacade

	admin       domain.User
	transporter domain.User
}

func (suite *TransporterServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockVehicleRepo = new(MockVehicleRepository)
	suite.mockNotifSvc = new(MockNotificationService)
	suite.mockMailSender = new(MockMailSender)
	suite.service = services.NewTransporterService(
		suite.mockUserRepo,
		suite.mockVehicleRepo,
		suite.mockNotifSvc,
		suite.mockMailSender,
	)

	suite.admin = domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.transporter = domain.User{
		UserID:    uuid.NewString(),
		FirstName: "Moussa",
		LastName:  "Ba",
		Email:     "moussa@example.test",
		Role:      domain.RoleTransporteur,
	}
}

func (suite *TransporterServiceTestSuite) expectUser(user domain.User) {
	u := user
	suite.mockUserRepo.On("FindUserByID", mock.Anything, user.UserID, false).Return(&u, nil)
}

func (suite *TransporterServiceTestSuite) TestApprove() {
	ctx := context.Background()
	suite.expectUser(suite.admin)
	suite.expectUser(suite.transporter)
	suite.mockUserRepo.On("MarkTransporterApproved", mock.Anything, suite.transporter.UserID, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifSvc.On("Notify", mock.Anything, suite.transporter.UserID, mock.Anything, mock.Anything, domain.NotificationAccountApproved).Once()
	suite.mockMailSender.On("Send", mock.Anything, portssvc.MailTransporterApproved, suite.transporter.Email, mock.Anything).Return(nil).Once()

	approved, err := suite.service.Approve(ctx, suite.admin.UserID, suite.transporter.UserID)

	suite.Require().NoError(err)
	suite.True(approved.IsApproved)
	suite.Require().NotNil(approved.ApprovedBy)
	suite.Equal(suite.admin.UserID, *approved.ApprovedBy)
	suite.NotNil(approved.ApprovedAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockMailSender.AssertExpectations(suite.T())
}

func (suite *TransporterServiceTestSuite) TestApprove_Idempotent() {
	ctx := context.Background()
	already := suite.transporter
	already.IsApproved = true

	suite.expectUser(suite.admin)
	suite.expectUser(already)

	approved, err := suite.service.Approve(ctx, suite.admin.UserID, already.UserID)

	suite.Require().NoError(err)
	suite.True(approved.IsApproved)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkTransporterApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockMailSender.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransporterServiceTestSuite) TestApprove_MailFailureDoesNotFail() {
	ctx := context.Background()
	suite.expectUser(suite.admin)
	suite.expectUser(suite.transporter)
	suite.mockUserRepo.On("MarkTransporterApproved", mock.Anything, suite.transporter.UserID, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifSvc.On("Notify", mock.Anything, suite.transporter.UserID, mock.Anything, mock.Anything, domain.NotificationAccountApproved).Once()
	suite.mockMailSender.On("Send", mock.Anything, portssvc.MailTransporterApproved, suite.transporter.Email, mock.Anything).
		Return(assert.AnError).Once()

	approved, err := suite.service.Approve(ctx, suite.admin.UserID, suite.transporter.UserID)

	suite.Require().NoError(err)
	suite.True(approved.IsApproved)
}

func (suite *TransporterServiceTestSuite) TestApprove_NonAdminForbidden() {
	ctx := context.Background()
	moderator := domain.User{UserID: uuid.NewString(), Role: domain.RoleModerator}
	suite.expectUser(moderator)

	_, err := suite.service.Approve(ctx, moderator.UserID, suite.transporter.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkTransporterApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransporterServiceTestSuite) TestApprove_NotATransporter() {
	ctx := context.Background()
	client := domain.User{UserID: uuid.NewString(), Role: domain.RolePME}
	suite.expectUser(suite.admin)
	suite.expectUser(client)

	_, err := suite.service.Approve(ctx, suite.admin.UserID, client.UserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransporterServiceTestSuite) TestReject_SendsMailOnly() {
	ctx := context.Background()
	suite.expectUser(suite.admin)
	suite.expectUser(suite.transporter)
	suite.mockMailSender.On("Send", mock.Anything, portssvc.MailTransporterRejected, suite.transporter.Email, mock.MatchedBy(func(data map[string]string) bool {
		return data["reason"] == "documents manquants"
	})).Return(nil).Once()

	err := suite.service.Reject(ctx, suite.admin.UserID, suite.transporter.UserID, "documents manquants")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkTransporterApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockMailSender.AssertExpectations(suite.T())
}

func (suite *TransporterServiceTestSuite) TestReject_MailFailureDoesNotFail() {
	ctx := context.Background()
	suite.expectUser(suite.admin)
	suite.expectUser(suite.transporter)
	suite.mockMailSender.On("Send", mock.Anything, portssvc.MailTransporterRejected, suite.transporter.Email, mock.Anything).
		Return(assert.AnError).Once()

	err := suite.service.Reject(ctx, suite.admin.UserID, suite.transporter.UserID, "")

	suite.Require().NoError(err)
}

func (suite *TransporterServiceTestSuite) TestListPendingTransporters() {
	ctx := context.Background()
	suite.expectUser(suite.admin)
	suite.mockUserRepo.On("ListPendingTransporters", mock.Anything).Return([]domain.User{suite.transporter}, nil).Once()

	pending, err := suite.service.ListPendingTransporters(ctx, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.Len(pending, 1)
	suite.False(pending[0].IsApproved)
}

func (suite *TransporterServiceTestSuite) TestGetTransporterDetails() {
	ctx := context.Background()
	vehicles := []domain.Vehicle{{VehicleID: uuid.NewString(), OwnerID: suite.transporter.UserID}}

	suite.expectUser(suite.admin)
	suite.expectUser(suite.transporter)
	suite.mockVehicleRepo.On("ListVehiclesByOwner", mock.Anything, suite.transporter.UserID).Return(vehicles, nil).Once()

	user, fleet, err := suite.service.GetTransporterDetails(ctx, suite.admin.UserID, suite.transporter.UserID)

	suite.Require().NoError(err)
	suite.Equal(suite.transporter.UserID, user.UserID)
	suite.Len(fleet, 1)
}

func TestTransporterService(t *testing.T) {
	suite.Run(t, new(TransporterServiceTestSuite))
}
