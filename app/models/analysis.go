package models

import "github.com/shopspring/decimal"

// FinancialSnapshot holds the portfolio-wide financial figures.
type FinancialSnapshot struct {
	ReceivableAmount decimal.Decimal `json:"receivable_amount"`
	ReceivedAmount   decimal.Decimal `json:"received_amount"`
	OverdueAmount    decimal.Decimal `json:"overdue_amount"`
	CollectionRate   decimal.Decimal `json:"collection_rate"`
}

// PropertySnapshot holds the portfolio-wide occupancy figures.
type PropertySnapshot struct {
	TotalArea           decimal.Decimal `json:"total_area"`
	RentedArea          decimal.Decimal `json:"rented_area"`
	AvailableProperties int             `json:"available_properties"`
	RentalRate          decimal.Decimal `json:"rental_rate"`
}

// AnalysisSnapshot is the combined read-side report.
type AnalysisSnapshot struct {
	Financial FinancialSnapshot `json:"financial"`
	Property  PropertySnapshot  `json:"property"`
}

var hundred = decimal.NewFromInt(100)

// CollectionRate computes received/receivable as a percentage, zero when
// there is nothing receivable.
func CollectionRate(received, receivable decimal.Decimal) decimal.Decimal {
	if receivable.IsZero() {
		return decimal.Zero
	}
	return received.Div(receivable).Mul(hundred).Round(2)
}

// RentalRate computes rented/total area as a percentage, zero when no area
// is registered.
func RentalRate(rentedArea, totalArea decimal.Decimal) decimal.Decimal {
	if totalArea.IsZero() {
		return decimal.Zero
	}
	return rentedArea.Div(totalArea).Mul(hundred).Round(2)
}
