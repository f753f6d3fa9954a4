package core

import (
	"fmt"

	"github.com/google/uuid"
)

// IdentifierNew returns a name that is unique for the lifetime of the process,
// in the form "<prefix>-<uuid>".
func IdentifierNew(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
