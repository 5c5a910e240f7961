package tarfix

import "errors"

var (
	ErrInapplicableOption   = errors.New("option not applicable")
	ErrUnknownValue         = errors.New("value is unknown")
	ErrUnsupportedAlgorithm = errors.New("algorithm unsupported")
	ErrUnknownFixture       = errors.New("fixture is unknown")
	ErrTruncateTooLong      = errors.New("truncation exceeds compressed size")
	ErrComposerClosed       = errors.New("composer already closed")
	ErrManifestCollision    = errors.New("manifest collides with a fixture")
)
