package app

import "errors"

// Sentinel errors for the application service.
var (
	ErrRoundAlreadyProcessed = errors.New("voter round already processed")
	ErrIncompleteRounds      = errors.New("not every voter round was processed")
	ErrContestMismatch       = errors.New("service is bound to another contest")
	ErrNoContest             = errors.New("no contest processed yet")
)
