// Package repository persists the hotel state as a single snapshot.  The
// sentinel values below let callers tell a missing snapshot apart from a
// failed write without inspecting backend specific errors.
package repository

import "errors"

// ErrSnapshotNotFound is returned by a Backend when no snapshot has been
// written yet.  Provider.Load treats it like any other read failure.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrIO wraps every failure of Provider.Save.  The in-memory state is never
// touched by a failed save, so the caller may simply retry.
var ErrIO = errors.New("snapshot write failed")

// ErrUnsupportedVersion is returned when decoding a snapshot written with a
// schema version this build does not understand.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")
