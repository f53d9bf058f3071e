package midtrans

// TransactionDetails order id and total charged at the gateway
type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

// ShippingAddress buyer address forwarded to the hosted checkout page
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// CustomerDetails buyer identity forwarded to the hosted checkout page
type CustomerDetails struct {
	FirstName       string           `json:"first_name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
}

// ItemDetail one line item of the checkout
type ItemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// SnapRequest request body of the Snap transaction endpoint
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	ItemDetails        []ItemDetail       `json:"item_details"`
	EnabledPayments    []string           `json:"enabled_payments,omitempty"`
	Callbacks          *Callbacks         `json:"callbacks,omitempty"`
}

// Callbacks redirect target after the hosted page finishes
type Callbacks struct {
	Finish string `json:"finish"`
}

// SnapResponse token and redirect URL of a created payment session
type SnapResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// VANumber one virtual account of a bank_transfer notification
type VANumber struct {
	Bank     string `json:"bank"`
	VANumber string `json:"va_number"`
}

// Notification webhook payload posted by the gateway on every
// payment status change
type Notification struct {
	OrderID           string     `json:"order_id"`
	TransactionStatus string     `json:"transaction_status"`
	FraudStatus       string     `json:"fraud_status"`
	PaymentType       string     `json:"payment_type"`
	TransactionID     string     `json:"transaction_id"`
	GrossAmount       string     `json:"gross_amount"`
	SignatureKey      string     `json:"signature_key"`
	StatusCode        string     `json:"status_code"`
	VANumbers         []VANumber `json:"va_numbers,omitempty"`
	PermataVANumber   string     `json:"permata_va_number,omitempty"`
	BillKey           string     `json:"bill_key,omitempty"`
	BillerCode        string     `json:"biller_code,omitempty"`
	PaymentCode       string     `json:"payment_code,omitempty"`
	ExpiryTime        string     `json:"expiry_time,omitempty"`
}
