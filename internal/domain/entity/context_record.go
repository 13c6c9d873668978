package entity

// ContextRecord is one row of the shared context table. Rows are written by
// other systems; this service only reads the most recent one.
type ContextRecord struct {
	ID   int64
	Data string
}
