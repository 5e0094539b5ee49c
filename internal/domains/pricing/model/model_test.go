package model_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/internal/domains/pricing/model"
)

func TestPaymentAccount_QRURL(t *testing.T) {
	account := model.PaymentAccount{
		BankID:        "970436",
		AccountName:   "NHA NGHI AN BINH",
		AccountNumber: "0123456789",
	}

	tests := []struct {
		name       string
		account    model.PaymentAccount
		amount     float64
		wantNote   string
		wantAmount string
		wantURL    bool
	}{
		{
			name:       "default transfer note",
			account:    account,
			amount:     350000.75,
			wantNote:   "Thanh toan tien phong",
			wantAmount: "350000",
			wantURL:    true,
		},
		{
			name: "custom transfer note",
			account: func() model.PaymentAccount {
				a := account
				a.Note = "Coc phong 101"

				return a
			}(),
			amount:     200000,
			wantNote:   "Coc phong 101",
			wantAmount: "200000",
			wantURL:    true,
		},
		{
			name:    "missing account number",
			account: model.PaymentAccount{BankID: "970436"},
			amount:  200000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.account.QRURL(tt.amount)

			if !tt.wantURL {
				assert.Empty(t, got)

				return
			}

			assert.True(t, strings.HasPrefix(got, "https://img.vietqr.io/image/970436-0123456789-compact2.png?"))

			parsed, err := url.Parse(got)
			assert.NoError(t, err)

			query := parsed.Query()
			assert.Equal(t, tt.wantNote, query.Get("addInfo"))
			assert.Equal(t, "NHA NGHI AN BINH", query.Get("accountName"))
			assert.Equal(t, tt.wantAmount, query.Get("amount"))
		})
	}
}
