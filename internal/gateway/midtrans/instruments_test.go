package midtrans

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabledPayments(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		bank     string
		expected []string
	}{
		{
			name:     "bank transfer without bank opens every VA channel",
			method:   "bank_transfer",
			expected: []string{"bca_va", "bni_va", "bri_va", "permata_va", "echannel"},
		},
		{
			name:     "mandiri routes to echannel",
			method:   "bank_transfer",
			bank:     "mandiri",
			expected: []string{"echannel"},
		},
		{
			name:     "bca routes to its VA",
			method:   "bank_transfer",
			bank:     "bca",
			expected: []string{"bca_va"},
		},
		{
			name:     "permata routes to its VA",
			method:   "bank_transfer",
			bank:     "permata",
			expected: []string{"permata_va"},
		},
		{
			name:     "e-wallet",
			method:   "e_wallet",
			expected: []string{"gopay", "shopeepay"},
		},
		{
			name:     "over the counter",
			method:   "cod",
			expected: []string{"indomaret", "alfamart"},
		},
		{
			name:   "unspecified opens everything",
			method: "",
			expected: []string{
				"bca_va", "bni_va", "bri_va", "permata_va", "echannel",
				"gopay", "shopeepay", "indomaret", "alfamart",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnabledPayments(tt.method, tt.bank))
		})
	}
}

func TestEnabledPayments_NeverOffersCards(t *testing.T) {
	methods := []string{"", "bank_transfer", "e_wallet", "cod"}
	for _, method := range methods {
		for _, instrument := range EnabledPayments(method, "") {
			assert.NotEqual(t, "credit_card", instrument)
		}
	}
}

func TestTruncateItemName(t *testing.T) {
	assert.Equal(t, "Denim Jacket", TruncateItemName("Denim Jacket"))

	long := strings.Repeat("x", 80)
	truncated := TruncateItemName(long)
	assert.Len(t, truncated, 50)
}
