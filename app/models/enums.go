package models

// RentalStatus defines the occupancy state of a property.
type RentalStatus string

const (
	StatusAvailable   RentalStatus = "available"
	StatusRented      RentalStatus = "rented"
	StatusMaintenance RentalStatus = "maintenance"
)

// ContractStatus defines the lifecycle state of a lease contract.
type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractTerminated ContractStatus = "terminated"
	ContractExpired    ContractStatus = "expired"
)

// FeeCategory defines the kind of charge a fee represents.
type FeeCategory string

const (
	CategoryDeposit       FeeCategory = "deposit"
	CategoryRent          FeeCategory = "rent"
	CategoryManagementFee FeeCategory = "management_fee"
)

// OverdueStatus defines whether a fee is past its term.
type OverdueStatus string

const (
	OverdueOnTime  OverdueStatus = "on_time"
	OverdueOverdue OverdueStatus = "overdue"
)

// PaymentMethod defines the accepted settlement channels.
type PaymentMethod string

const (
	MethodPOS          PaymentMethod = "POS"
	MethodWechat       PaymentMethod = "wechat"
	MethodAlipay       PaymentMethod = "alipay"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodOther        PaymentMethod = "other"
)

// ValidPaymentMethod reports whether m is one of the accepted channels.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodPOS, MethodWechat, MethodAlipay, MethodBankTransfer, MethodOther:
		return true
	}
	return false
}

// OneTimeTerm is the term label for fees that are not tied to a billing month.
const OneTimeTerm = "one-time"
