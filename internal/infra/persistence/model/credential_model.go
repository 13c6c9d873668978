// Package model holds the GORM persistence models.
package model

// CredentialModel mirrors the 'users' table.
type CredentialModel struct {
	ID       string `gorm:"type:varchar(10);primaryKey"`
	Name     string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null"`
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "users"
}
