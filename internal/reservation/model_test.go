package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCheckedIn, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusCheckedIn, StatusCancelled, false},
		{StatusCheckedOut, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusCheckedIn, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatusReleased(t *testing.T) {
	assert.True(t, StatusCancelled.Released())
	assert.True(t, StatusNoShow.Released())
	assert.False(t, StatusPending.Released())
	assert.False(t, StatusCheckedOut.Released())
	assert.False(t, Status("gone").Valid())
}

func TestPendingAmount(t *testing.T) {
	r := &Reservation{TotalAmount: 1000, PaidAmount: 400}
	assert.Equal(t, int64(600), r.PendingAmount())
	assert.False(t, r.IsPaidInFull())

	r.PaidAmount = 1200
	assert.Equal(t, int64(0), r.PendingAmount())
	assert.True(t, r.IsPaidInFull())

	assert.True(t, (&Reservation{}).IsPaidInFull())
}

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		paid    int64
		amount  int64
		want    int64
		wantErr error
	}{
		{"partial", StatusConfirmed, 0, 300, 300, nil},
		{"settles balance", StatusCheckedIn, 700, 300, 1000, nil},
		{"zero amount", StatusConfirmed, 0, 0, 0, ErrInvalidPaymentAmount},
		{"negative amount", StatusConfirmed, 0, -5, 0, ErrInvalidPaymentAmount},
		{"exceeds balance", StatusConfirmed, 900, 200, 900, ErrPaymentExceedsBalance},
		{"already settled", StatusCheckedOut, 1000, 1, 1000, ErrPaymentExceedsBalance},
		{"cancelled", StatusCancelled, 0, 100, 0, ErrPaymentNotAllowed},
		{"no show", StatusNoShow, 0, 100, 0, ErrPaymentNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reservation{Status: tt.status, TotalAmount: 1000, PaidAmount: tt.paid}
			err := r.ApplyPayment(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, r.PaidAmount)
			assert.GreaterOrEqual(t, r.PendingAmount(), int64(0))
		})
	}
}
