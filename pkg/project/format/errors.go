package format

import "errors"

var (
	// Fatal load errors 📁
	ErrNotProjectFile = errors.New("not a recognized project file")
	ErrMalformedBody  = errors.New("malformed project body")
	ErrBadDataLength  = errors.New("declared file data length is not positive")

	// Save errors 💾
	ErrReadOnlyDestination = errors.New("destination file is read-only")
)
