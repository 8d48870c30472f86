package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
)

// MarkOverdueFees flips uncollected fees past their term to overdue.
// Aggregate recomputation happens inside the database layer, per affected
// contract, in the same transaction as the flip.
func MarkOverdueFees(db *sql.DB, now time.Time) {
	flipped, err := database.MarkFeesOverdue(db, now)
	if err != nil {
		log.Printf("Overdue marking failed: %v", err)
		return
	}
	if flipped > 0 {
		log.Printf("Marked %d fees overdue", flipped)
	}
}

// RolloverRentFees appends the current month's rent fee to every active
// contract that covers this month and does not have one yet. It creates
// fees only; collection state and aggregates are owned by the settlement
// rules. Zero eligible contracts is a normal outcome.
func RolloverRentFees(db *sql.DB, now time.Time) {
	contracts, err := database.GetContracts(db, string(models.ContractActive))
	if err != nil {
		log.Printf("Rent rollover: failed to fetch contracts: %v", err)
		return
	}

	term := now.Format("2006-01")
	created := 0
	for _, contract := range contracts {
		if !coversMonth(contract, now) {
			continue
		}

		fees, err := database.GetFees(db, database.FeeFilters{ContractID: contract.ID})
		if err != nil {
			log.Printf("Rent rollover: failed to fetch fees for contract %s: %v", contract.ID, err)
			continue
		}
		if hasRentFeeForTerm(fees, term) {
			continue
		}

		fee := &models.Fee{
			ContractID:    contract.ID,
			Category:      models.CategoryRent,
			Amount:        contract.MonthlyRent,
			Term:          term,
			OverdueStatus: models.OverdueOnTime,
		}
		if err := database.CreateFee(db, fee); err != nil {
			log.Printf("Rent rollover: failed to create fee for contract %s: %v", contract.ID, err)
			continue
		}
		created++
	}
	if created > 0 {
		log.Printf("Rent rollover created %d fees for term %s", created, term)
	}
}

// ExpireContracts flips active contracts past their end date to expired,
// which releases their properties through the transactional update path.
func ExpireContracts(db *sql.DB, now time.Time) {
	contracts, err := database.GetContracts(db, string(models.ContractActive))
	if err != nil {
		log.Printf("Contract expiry: failed to fetch contracts: %v", err)
		return
	}

	expired := models.ContractExpired
	for _, contract := range contracts {
		if !contract.EndDate.Before(now) {
			continue
		}
		update := &database.ContractUpdate{Status: &expired}
		if err := database.UpdateContract(db, contract.ID, update); err != nil {
			log.Printf("Contract expiry: failed to expire contract %s: %v", contract.ID, err)
			continue
		}
		log.Printf("Contract %s expired", contract.ID)
	}
}

func coversMonth(contract *models.Contract, now time.Time) bool {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	return contract.StartDate.Before(monthEnd) && !contract.EndDate.Before(monthStart)
}

func hasRentFeeForTerm(fees []*models.Fee, term string) bool {
	for _, fee := range fees {
		if fee.Category == models.CategoryRent && fee.Term == term {
			return true
		}
	}
	return false
}
