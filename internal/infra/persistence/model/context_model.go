package model

// ContextModel mirrors the 'context' table.
type ContextModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Data string `gorm:"type:text;not null"`
}

// TableName explicitly sets the table name for GORM.
func (ContextModel) TableName() string {
	return "context"
}
