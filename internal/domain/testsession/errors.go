package testsession

import (
	"errors"
	"fmt"

	"github.com/priyankahotkar/TCS-Digital-Prep-Website/internal/domain/questionbank"
)

// ErrInvalidTransition signals an operation invoked in a phase that
// forbids it, e.g. answering while no test is active. This is a contract
// violation by the caller and is never silently swallowed.
var ErrInvalidTransition = errors.New("operation not allowed in current session phase")

// InsufficientBankError is returned by BuildSet when a category pool is
// smaller than its quota. It is surfaced before any session state exists.
type InsufficientBankError struct {
	Category questionbank.Category
	Have     int
	Need     int
}

func (e *InsufficientBankError) Error() string {
	return fmt.Sprintf("bank holds %d %s questions, quota needs %d", e.Have, e.Category, e.Need)
}
