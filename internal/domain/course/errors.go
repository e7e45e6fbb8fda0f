package course

import "errors"

var (
	// ErrGroupNotFound indicates the group key is not part of the snapshot.
	ErrGroupNotFound = errors.New("group not found")
	// ErrIndexOutOfRange indicates the course index is outside the group.
	ErrIndexOutOfRange = errors.New("course index out of range")
	// ErrInvalidStatus indicates a status outside pending/active/passed.
	ErrInvalidStatus = errors.New("invalid course status")
	// ErrInvalidFilter indicates a filter that is neither "all" nor a status.
	ErrInvalidFilter = errors.New("invalid status filter")
	// ErrMalformedSnapshot indicates persisted data that cannot be decoded.
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)
