package constants

// Staff roles
const (
	RoleAdmin   = "ADMIN"
	RoleCashier = "CASHIER"
	RoleCook    = "COOK"
	RoleWaiter  = "WAITER"
)

var Roles = []string{RoleAdmin, RoleCashier, RoleCook, RoleWaiter}

// Order lifecycle
const (
	OrderOpen   = "OPEN"
	OrderClosed = "CLOSED"
)

// Order item lifecycle
const (
	ItemPending   = "PENDING"
	ItemServed    = "SERVED"
	ItemCancelled = "CANCELLED"
)

var ItemStatuses = []string{ItemPending, ItemServed, ItemCancelled}

// Bill settlement status, always derived from the payment ledger
const (
	BillPending       = "PENDING"
	BillPartiallyPaid = "PARTIALLY_PAID"
	BillPaid          = "PAID"
)

// Payment methods
const (
	MethodCash    = "CASH"
	MethodCard    = "CARD"
	MethodQR      = "QR"
	MethodVoucher = "VOUCHER"
)

var PaymentMethods = []string{MethodCash, MethodCard, MethodQR, MethodVoucher}

// Error message keys
const (
	ERROR_INTERNAL_ERROR     = "INTERNAL_ERROR"
	MISSING_LOGIN_INPUT      = "MISSING_LOGIN_INPUT"
	INVALID_USERNAME         = "INVALID_USERNAME"
	INVALID_PASSWORD         = "INVALID_PASSWORD"
	ACCOUNT_NOT_ACTIVE       = "ACCOUNT_NOT_ACTIVE"
	NOT_AUTHORIZED           = "NOT_AUTHORIZED"
	ORDER_NOT_FOUND          = "ORDER_NOT_FOUND"
	ORDER_ALREADY_CLOSED     = "ORDER_ALREADY_CLOSED"
	ORDER_ITEM_NOT_FOUND     = "ORDER_ITEM_NOT_FOUND"
	MENU_ITEM_NOT_FOUND      = "MENU_ITEM_NOT_FOUND"
	BILL_NOT_FOUND           = "BILL_NOT_FOUND"
	PAYMENT_NOT_FOUND        = "PAYMENT_NOT_FOUND"
	SPLIT_NOT_FOUND          = "SPLIT_NOT_FOUND"
	TABLE_NOT_FOUND          = "TABLE_NOT_FOUND"
	TABLE_ALREADY_GROUPED    = "TABLE_ALREADY_GROUPED"
	TABLE_GROUP_NOT_FOUND    = "TABLE_GROUP_NOT_FOUND"
	INVALID_ITEM_STATUS      = "INVALID_ITEM_STATUS"
	INVALID_INPUT            = "INVALID_INPUT"
	DATA_INPUT_IS_NOT_NUMBER = "DATA_INPUT_IS_NOT_NUMBER"
)
