package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
	"github.com/gofiber/fiber/v2"
)

// tenantFees groups a notification batch: one message per tenant.
type tenantFees struct {
	tenant *models.Tenant
	fees   []*models.Fee
}

func groupFeesByTenant(db *sql.DB, fees []*models.Fee) []*tenantFees {
	byTenant := map[string]*tenantFees{}
	var order []string
	for _, fee := range fees {
		tenant, err := database.GetTenantForContract(db, fee.ContractID)
		if err != nil {
			log.Printf("Skipping fee %s: failed to resolve tenant: %v", fee.ID, err)
			continue
		}
		group, ok := byTenant[tenant.ID]
		if !ok {
			group = &tenantFees{tenant: tenant}
			byTenant[tenant.ID] = group
			order = append(order, tenant.ID)
		}
		group.fees = append(group.fees, fee)
	}

	groups := make([]*tenantFees, 0, len(order))
	for _, id := range order {
		groups = append(groups, byTenant[id])
	}
	return groups
}

// SendPaymentNotifications mails each tenant with fees due in the current
// period. No eligible fees is a no-op. Dispatch failures are logged and
// never propagate; this job only reads fees and sends mail, it mutates no
// financial state.
func SendPaymentNotifications(db *sql.DB, now time.Time) {
	fees, err := database.GetFeesDueInPeriod(db, now)
	if err != nil {
		log.Printf("Payment notifications: failed to fetch due fees: %v", err)
		return
	}
	if len(fees) == 0 {
		return
	}

	for _, group := range groupFeesByTenant(db, fees) {
		body, err := renderEmail("emails/payment_notification", group)
		if err != nil {
			log.Printf("Payment notifications: failed to render email for %s: %v", group.tenant.Email, err)
			continue
		}
		if err := sendMail(group.tenant.Email, "Payment reminder", body); err != nil {
			log.Printf("Payment notifications: failed to send to %s: %v", group.tenant.Email, err)
		}
	}
}

// SendOverdueNotifications mails each tenant with overdue unpaid fees.
func SendOverdueNotifications(db *sql.DB) {
	fees, err := database.GetOverdueUnpaidFees(db)
	if err != nil {
		log.Printf("Overdue notifications: failed to fetch overdue fees: %v", err)
		return
	}
	if len(fees) == 0 {
		return
	}

	for _, group := range groupFeesByTenant(db, fees) {
		body, err := renderEmail("emails/overdue_notification", group)
		if err != nil {
			log.Printf("Overdue notifications: failed to render email for %s: %v", group.tenant.Email, err)
			continue
		}
		if err := sendMail(group.tenant.Email, "Overdue payment notice", body); err != nil {
			log.Printf("Overdue notifications: failed to send to %s: %v", group.tenant.Email, err)
		}
	}
}

func renderEmail(template string, group *tenantFees) (string, error) {
	engine, err := loadReceiptEngine()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = engine.Render(&buf, template, fiber.Map{
		"Tenant": group.tenant,
		"Fees":   group.fees,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sendMail(to, subject, htmlBody string) error {
	cfg := config.AppConfig.SMTP
	if cfg.Host == "" || cfg.From == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	msg := []byte("From: " + cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" + htmlBody)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	return smtp.SendMail(addr, auth, cfg.From, []string{to}, msg)
}
