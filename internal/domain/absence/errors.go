package absence

import "errors"

var (
	ErrAbsenceRequestNotFound         = errors.New("absence request not found")
	ErrAbsenceRequestAlreadyProcessed = errors.New("absence request has already been validated or rejected")
)
