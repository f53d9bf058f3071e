package midtrans

// Payment instrument identifiers understood by the Snap API.
var (
	bankTransferAll = []string{"bca_va", "bni_va", "bri_va", "permata_va", "echannel"}
	eWalletAll      = []string{"gopay", "shopeepay"}
	codAll          = []string{"indomaret", "alfamart"}
)

// EnabledPayments maps a buyer-facing payment method choice to the Snap
// instrument list. Card payments are never offered. An empty method opens
// every supported instrument.
func EnabledPayments(method, bank string) []string {
	switch method {
	case "bank_transfer":
		switch bank {
		case "mandiri":
			// Mandiri has no VA channel; bills go through echannel.
			return []string{"echannel"}
		case "bca", "bni", "bri", "permata":
			return []string{bank + "_va"}
		default:
			return append([]string(nil), bankTransferAll...)
		}
	case "e_wallet":
		return append([]string(nil), eWalletAll...)
	case "cod":
		return append([]string(nil), codAll...)
	default:
		all := make([]string, 0, len(bankTransferAll)+len(eWalletAll)+len(codAll))
		all = append(all, bankTransferAll...)
		all = append(all, eWalletAll...)
		all = append(all, codAll...)
		return all
	}
}

// TruncateItemName shortens an item name to the 50 character limit the
// Snap API enforces on item_details names.
func TruncateItemName(name string) string {
	if len(name) > 50 {
		return name[:50]
	}
	return name
}
