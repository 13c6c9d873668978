package auth

import (
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDLength is the size of credential identifiers. The users.id column is VARCHAR(10).
const IDLength = 10

// nanoIDGenerator draws IDLength symbols from the URL-safe alphabet A-Za-z0-9_-
// using crypto/rand.
type nanoIDGenerator struct {
	length int
}

func NewNanoIDGenerator() service.IDGenerator {
	return &nanoIDGenerator{length: IDLength}
}

func (g *nanoIDGenerator) NewID() (string, error) {
	id, err := gonanoid.New(g.length)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate id")
	}

	return id, nil
}
