package flowicon

import "github.com/pkg/errors"

var (
	// ErrInvalidGeometry is returned when a size or a shape parameter can not produce a valid icon.
	// It signals a configuration bug and is never recovered.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidConfig is returned for option values outside their supported set.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCapabilityUnavailable is reported by a Backend which can not rasterize.
	// The generator recovers from it by switching to the static fallback artifact.
	ErrCapabilityUnavailable = errors.New("rendering capability unavailable")
)

func invalidGeometry(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidGeometry, format, args...)
}

func invalidConfig(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
