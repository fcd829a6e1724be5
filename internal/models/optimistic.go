package models

import (
	"fmt"

	"github.com/google/uuid"
)

// TempIDPrefix namespaces locally generated task IDs. The backend issues
// bare UUIDs, so a prefixed ID can never collide with a server-assigned one.
const TempIDPrefix = "tmp-"

// OptimisticTask is a task shown to the user before the backend has
// confirmed it. Pending is true until confirmation; Exiting is set when the
// creation failed and the entry is about to be removed from the display.
type OptimisticTask struct {
	Task
	Pending bool `json:"pending"`
	Exiting bool `json:"exiting"`
}

// NewTempID generates a temporary local task identifier
func NewTempID() string {
	return fmt.Sprintf("%s%s", TempIDPrefix, uuid.New().String())
}

// IsTempID reports whether the ID was generated locally
func IsTempID(id string) bool {
	return len(id) > len(TempIDPrefix) && id[:len(TempIDPrefix)] == TempIDPrefix
}
