// Package entity contains the core business objects of the service.
package entity

import "log/slog"

// RedactedMarker replaces secret values in logs.
const RedactedMarker = "<!REDACTED!>"

// Credential is one registered identity. PasswordHash holds the encoded
// bcrypt digest including salt and cost, never the plaintext.
type Credential struct {
	ID           string // Short URL-safe identifier, assigned at registration.
	Name         string // Display name.
	Email        string // Unique, compared case-sensitively.
	PasswordHash string
}

// Identity is the public projection of a Credential.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Identity strips the password hash.
func (c *Credential) Identity() Identity {
	return Identity{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
	}
}

// LogValue keeps the password hash out of structured logs.
func (c *Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID),
		slog.String("email", c.Email),
		slog.String("passwordHash", RedactedMarker),
	)
}
