package reader

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions no registered
	// format claims. The file is never opened in that case.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnreadableDocument is returned when extraction succeeds
	// structurally but the document yields no words (encrypted,
	// image-only, or corrupt content).
	ErrUnreadableDocument = errors.New("document contains no readable text")
)
