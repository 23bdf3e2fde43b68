package strip

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryNotFound is returned when the configured root is missing or
	// is not a directory. Nothing has been processed when it is returned.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrWalkFailure matches a FileError raised while listing a directory.
	ErrWalkFailure = errors.New("walk failure")
	// ErrReadFailure matches a FileError raised while opening or decoding a file.
	ErrReadFailure = errors.New("read failure")
	// ErrWriteFailure matches a FileError raised while encoding or replacing a file.
	ErrWriteFailure = errors.New("write failure")
)

// Stage names the step of per-file processing at which a failure happened.
type Stage string

const (
	StageWalk  Stage = "walk"
	StageRead  Stage = "read"
	StageWrite Stage = "write"
)

// FileError is a failure tied to a single path.
type FileError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is matches the stage sentinels, so errors.Is(err, ErrReadFailure) holds for
// any read-stage FileError in an error chain.
func (e *FileError) Is(target error) bool {
	switch target {
	case ErrWalkFailure:
		return e.Stage == StageWalk
	case ErrReadFailure:
		return e.Stage == StageRead
	case ErrWriteFailure:
		return e.Stage == StageWrite
	}
	return false
}

// ErrorPolicy decides what happens to the rest of a run after a file fails.
type ErrorPolicy int

const (
	// Continue reports the failure and carries on with the next file.
	Continue ErrorPolicy = iota
	// Abort stops the run at the first failure.
	Abort
)

func (p ErrorPolicy) String() string {
	switch p {
	case Continue:
		return "continue"
	case Abort:
		return "abort"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy reads "continue" or "abort"; empty means Continue.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "continue":
		return Continue, nil
	case "abort":
		return Abort, nil
	default:
		return Continue, fmt.Errorf("unknown error policy '%s' (want continue or abort)", s)
	}
}
