package service

// IDGenerator produces short URL-safe identifiers for new credentials.
// Uniqueness is backed by the store, not the generator.
type IDGenerator interface {
	NewID() (string, error)
}
