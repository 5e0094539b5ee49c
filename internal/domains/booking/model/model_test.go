package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"innkeep/internal/domains/booking/model"
	pricing "innkeep/internal/domains/pricing/model"
)

func TestBooking_DecodeDocument(t *testing.T) {
	valid := func() bson.D {
		return bson.D{
			{Key: "_id", Value: "bk-1"},
			{Key: "booking_type", Value: "DAILY"},
			{Key: "status", Value: "CONFIRMED"},
			{Key: "online_payment_type", Value: "deposit"},
			{Key: "online_payment_status", Value: "pending"},
		}
	}

	with := func(key string, value any) bson.D {
		document := valid()
		for i := range document {
			if document[i].Key == key {
				document[i].Value = value
			}
		}

		return document
	}

	tests := []struct {
		name     string
		document bson.D
		wantErr  error
	}{
		{name: "valid", document: valid()},
		{name: "walk-in without payment fields", document: with("online_payment_type", "")},
		{name: "unknown status", document: with("status", "ARCHIVED"), wantErr: model.ErrUnknownStatus},
		{name: "unknown payment type", document: with("online_payment_type", "card"), wantErr: model.ErrUnknownPaymentType},
		{
			name:     "unknown payment status",
			document: with("online_payment_status", "refunded"),
			wantErr:  model.ErrUnknownPaymentStatus,
		},
		{name: "unknown booking type", document: with("booking_type", "WEEKLY"), wantErr: pricing.ErrUnknownBookingType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(tt.document)
			assert.NoError(t, err)

			var booking model.Booking

			err = bson.Unmarshal(data, &booking)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusConfirmed, booking.Status)
			assert.Equal(t, pricing.BookingTypeDaily, booking.BookingType)
		})
	}
}
