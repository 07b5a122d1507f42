package services

import "github.com/google/uuid"

// newID returns a time-ordered identifier with a one-letter kind prefix.
var newID = func(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + id.String()
}

const (
	accountIDPrefix     = "u"
	listingIDPrefix     = "j"
	applicationIDPrefix = "a"
)
