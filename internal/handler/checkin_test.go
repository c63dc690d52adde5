package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quickshow/quickshow-api/internal/model"
)

func TestEvaluateCheckin(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		booking    model.Booking
		wantOK     bool
		wantReason string
	}{
		{
			name:    "confirmed and unused",
			booking: model.Booking{Status: model.BookingConfirmed},
			wantOK:  true,
		},
		{
			name:       "already used",
			booking:    model.Booking{Status: model.BookingConfirmed, CheckedIn: true, CheckedInAt: &now},
			wantOK:     false,
			wantReason: checkinReasonUsed,
		},
		{
			name:       "cancelled",
			booking:    model.Booking{Status: model.BookingCancelled},
			wantOK:     false,
			wantReason: checkinReasonNotConfirmed,
		},
		{
			name:       "refunded",
			booking:    model.Booking{Status: model.BookingRefunded},
			wantOK:     false,
			wantReason: checkinReasonNotConfirmed,
		},
		{
			name:       "used wins over cancelled",
			booking:    model.Booking{Status: model.BookingCancelled, CheckedIn: true, CheckedInAt: &now},
			wantOK:     false,
			wantReason: checkinReasonUsed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := evaluateCheckin(tt.booking)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
