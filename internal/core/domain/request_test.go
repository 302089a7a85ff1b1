package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRequestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{StatusPending, StatusOffersReceived, true},
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusDelivered, false},
		{StatusOffersReceived, StatusAssigned, true},
		{StatusOffersReceived, StatusPending, true},
		{StatusOffersReceived, StatusCancelled, true},
		{StatusOffersReceived, StatusInProgress, false},
		{StatusAssigned, StatusInProgress, true},
		{StatusAssigned, StatusCancelled, true},
		{StatusAssigned, StatusDelivered, false},
		{StatusAssigned, StatusPending, false},
		{StatusInProgress, StatusDelivered, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusAssigned, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusDelivered, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusOffersReceived.IsTerminal())
	assert.False(t, StatusAssigned.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestRequestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.False(t, RequestStatus("SHIPPED").Valid())
}

func TestRoleGroups(t *testing.T) {
	assert.True(t, RoleAdmin.IsPrivileged())
	assert.True(t, RoleDataAdmin.IsPrivileged())
	assert.True(t, RoleModerator.IsPrivileged())
	assert.False(t, RoleModerator.IsAdministrative())
	assert.True(t, RoleAdmin.IsAdministrative())
	assert.True(t, RoleDataAdmin.IsAdministrative())

	assert.True(t, RolePME.IsClient())
	assert.True(t, RoleAgriculteur.IsClient())
	assert.True(t, RoleParticulier.IsClient())
	assert.False(t, RoleTransporteur.IsClient())

	assert.True(t, RoleTransporteur.IsTransporter())
	assert.False(t, Role("COURIER").Valid())
}

func TestLedgerEntrySignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(5000)
	credit := LedgerEntry{Type: EntryCredit, Amount: amount}
	debit := LedgerEntry{Type: EntryDebit, Amount: amount}

	assert.True(t, credit.SignedAmount().Equal(amount))
	assert.True(t, debit.SignedAmount().Equal(amount.Neg()))
}

func TestSoftDeleteRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	var f SoftDeleteFields
	f.IsActive = true

	f.MarkDeleted(now)
	assert.False(t, f.IsActive)
	if assert.NotNil(t, f.DeletedAt) {
		assert.Equal(t, now, *f.DeletedAt)
	}

	f.MarkRestored()
	assert.True(t, f.IsActive)
	assert.Nil(t, f.DeletedAt)
}

func TestIsAssignedTo(t *testing.T) {
	transporter := "t-1"
	req := TransportRequest{}
	assert.False(t, req.IsAssignedTo(transporter))

	req.AssignedTransporterID = &transporter
	assert.True(t, req.IsAssignedTo(transporter))
	assert.False(t, req.IsAssignedTo("t-2"))
}
