package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWaveType is returned when the shape selector is not one of
	// square, sawtooth, sine or noise.
	ErrInvalidWaveType = errors.New("invalid wave type")

	// ErrSampleLimit is returned when a render would run past
	// Config.MaxSamples without the envelope or frequency floor ending it.
	ErrSampleLimit = errors.New("sample limit exceeded")

	// ErrBadSettings is returned for malformed jsfxr settings strings.
	ErrBadSettings = errors.New("bad settings string")

	// ErrBadBlob is returned for malformed binary parameter blobs.
	ErrBadBlob = errors.New("bad parameter blob")
)

func invalidWaveType(w WaveType) error {
	return fmt.Errorf("%w: %d", ErrInvalidWaveType, int(w))
}

// UnknownFieldError reports a parameter key that Params does not have.
type UnknownFieldError struct {
	Key string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Key)
}
