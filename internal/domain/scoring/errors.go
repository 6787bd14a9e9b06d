package scoring

import "errors"

// Sentinel errors returned by the engine. Both indicate a data-integrity
// problem with the loaded contest and are not recoverable within a run.
var (
	ErrVoterIndexOutOfRange = errors.New("voter index out of range")
	ErrMissingToken         = errors.New("entry has no token for voter")
)
