// Package service defines interfaces for stateless domain services.
package service

// PasswordHasher abstracts the one-way password hashing algorithm.
type PasswordHasher interface {
	// Hash returns a salted hash. Two calls with the same password yield
	// different outputs that both verify.
	Hash(password string) (string, error)

	// Verify compares in constant time. A mismatch or malformed hash is a
	// plain false, never an error.
	Verify(password, hash string) bool
}
