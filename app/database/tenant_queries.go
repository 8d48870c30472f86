package database

import (
	"database/sql"

	"github.com/Shinokawa/TentalManager/app/models"
)

func GetTenants(db *sql.DB, search string) ([]*models.Tenant, error) {
	query := `SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, ''),
			  COALESCE(phone, ''), created_at, updated_at
			  FROM tenants`
	var args []interface{}
	if search != "" {
		query += ` WHERE LOWER(email) LIKE $1
				   OR LOWER(first_name || ' ' || last_name) LIKE $1
				   OR phone LIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t := &models.Tenant{}
		if err := rows.Scan(&t.ID, &t.Email, &t.FirstName, &t.LastName,
			&t.Phone, &t.CreatedAt, &t.UpdatedAt); err != nil {
			continue
		}
		tenants = append(tenants, t)
	}
	return tenants, nil
}

func GetTenantByID(db DBTX, tenantID string) (*models.Tenant, error) {
	t := &models.Tenant{}
	query := `SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, ''),
			  COALESCE(phone, ''), created_at, updated_at
			  FROM tenants WHERE id = $1`

	err := db.QueryRow(query, tenantID).Scan(
		&t.ID, &t.Email, &t.FirstName, &t.LastName, &t.Phone, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTenantForContract resolves the tenant a contract belongs to.
func GetTenantForContract(db DBTX, contractID string) (*models.Tenant, error) {
	t := &models.Tenant{}
	query := `SELECT t.id, t.email, COALESCE(t.first_name, ''), COALESCE(t.last_name, ''),
			  COALESCE(t.phone, ''), t.created_at, t.updated_at
			  FROM tenants t
			  JOIN contracts c ON c.tenant_id = t.id
			  WHERE c.id = $1`

	err := db.QueryRow(query, contractID).Scan(
		&t.ID, &t.Email, &t.FirstName, &t.LastName, &t.Phone, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func CreateTenant(db *sql.DB, tenant *models.Tenant) error {
	query := `INSERT INTO tenants (email, first_name, last_name, phone, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, tenant.Email, tenant.FirstName, tenant.LastName, tenant.Phone).Scan(
		&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt,
	)
}

// UpdateTenant edits contact info. The email identity key is immutable.
func UpdateTenant(db *sql.DB, tenant *models.Tenant) error {
	query := `UPDATE tenants SET first_name = $1, last_name = $2, phone = $3, updated_at = NOW()
			  WHERE id = $4`
	result, err := db.Exec(query, tenant.FirstName, tenant.LastName, tenant.Phone, tenant.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTenant removes a tenant unless contracts still reference it.
func DeleteTenant(db *sql.DB, tenantID string) error {
	var contracts int
	err := db.QueryRow(`SELECT COUNT(*) FROM contracts WHERE tenant_id = $1`, tenantID).Scan(&contracts)
	if err != nil {
		return err
	}
	if contracts > 0 {
		return ErrTenantHasContracts
	}

	result, err := db.Exec(`DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
