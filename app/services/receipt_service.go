package services

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

var (
	receiptEngine *html.Engine
	receiptOnce   sync.Once
	receiptErr    error
)

func loadReceiptEngine() (*html.Engine, error) {
	receiptOnce.Do(func() {
		receiptEngine = html.New("./app/templates", ".html")
		receiptErr = receiptEngine.Load()
	})
	return receiptEngine, receiptErr
}

// GenerateReceipt renders the receipt document for a payment and stores it
// under the configured receipt directory, keyed by payment id. An artifact
// that already exists on disk is reused. Callers on the settlement path
// treat any error as best-effort: the financial state change stands either
// way.
func GenerateReceipt(db *sql.DB, paymentID string) (string, error) {
	payment, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		return "", err
	}

	if payment.ReceiptPath != nil {
		if _, err := os.Stat(*payment.ReceiptPath); err == nil {
			return *payment.ReceiptPath, nil
		}
	}

	fee, err := database.GetFeeByID(db, payment.FeeID)
	if err != nil {
		return "", err
	}
	tenant, err := database.GetTenantForContract(db, fee.ContractID)
	if err != nil {
		return "", err
	}

	engine, err := loadReceiptEngine()
	if err != nil {
		return "", err
	}

	dir := config.AppConfig.ReceiptDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, payment.ID+".html")

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	err = engine.Render(file, "receipts/receipt", fiber.Map{
		"Payment": payment,
		"Fee":     fee,
		"Tenant":  tenant,
	})
	if err != nil {
		return "", err
	}

	if err := database.SetPaymentReceipt(db, payment.ID, path); err != nil {
		return "", err
	}
	return path, nil
}
