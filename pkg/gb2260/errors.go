package gb2260

import "github.com/pkg/errors"

var (
	ErrUnknownSource   = errors.New("unknown source")
	ErrUnknownRevision = errors.New("unknown revision")
	ErrUnknownCode     = errors.New("unknown code")
	ErrDuplicateCode   = errors.New("duplicate code")
)
