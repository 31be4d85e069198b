package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewDocumentName generates a name for a new document from the doctype's
// series prefix and a random fragment, e.g. "PO-7f3a2b9c".
func NewDocumentName(prefix string) string {
	fragment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%s", prefix, fragment)
}
