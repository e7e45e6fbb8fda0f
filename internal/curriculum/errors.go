package curriculum

import "errors"

// ErrInvalidCurriculum indicates a curriculum document that cannot be used.
var ErrInvalidCurriculum = errors.New("invalid curriculum")
