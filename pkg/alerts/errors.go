package alerts

import "github.com/pkg/errors"

var (
	// ErrUnknownOperation is returned by Quick when the call shape is not recognized.
	// It always indicates a programming error at the call site.
	ErrUnknownOperation = errors.New("alerts: unknown operation")

	// ErrDataFormat is returned when serialized alert data cannot be decoded.
	ErrDataFormat = errors.New("alerts: malformed alert data")
)

func unknownOperation(receiver interface{}, name string) error {
	return errors.Wrapf(ErrUnknownOperation, "call to undefined method %T::%s()", receiver, name)
}
