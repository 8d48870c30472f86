package models

import "time"

// Tenant represents a renter. Email is the immutable identity key.
type Tenant struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	FirstName string    `json:"first_name,omitempty" gorm:"type:varchar(30)"`
	LastName  string    `json:"last_name,omitempty" gorm:"type:varchar(30)"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Contracts []*Contract `json:"contracts,omitempty" gorm:"foreignKey:TenantID;references:ID"`
}

// FullName returns the tenant's display name.
func (t *Tenant) FullName() string {
	if t.FirstName == "" && t.LastName == "" {
		return t.Email
	}
	if t.FirstName == "" {
		return t.LastName
	}
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}
