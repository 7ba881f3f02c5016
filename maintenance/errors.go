package maintenance

import (
	"errors"
)

// ErrPrecondition marks a workspace that failed validation. Nothing has been
// created or moved when a run aborts with it.
var ErrPrecondition = errors.New("workspace precondition failed")
