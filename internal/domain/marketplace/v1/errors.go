package marketplacev1

import "fmt"

// ReconciliationError reports a marketplace write that the ledger confirmed
// but whose follow-up refresh of the local mirror failed. The on-chain state
// changed and is final; the attached entities were not fully re-read and, on
// the reject/delete path, the match was not reset to empty. Callers detect it
// with errors.As.
type ReconciliationError struct {
	Op  string
	Err error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s: ledger write confirmed but reconciliation failed: %v", e.Op, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
