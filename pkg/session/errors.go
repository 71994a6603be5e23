package session

import "errors"

// ErrSaveInProgress is returned by Save while an earlier save has not
// finished.
var ErrSaveInProgress = errors.New("session: save already in progress")

// ErrNoStore is returned when the session has no remote store configured.
var ErrNoStore = errors.New("session: remote store is not configured")
