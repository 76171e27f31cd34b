package cache

import "errors"

var (
	// ErrInvalidCapacity is returned by New and NewSharded when
	// Options.Capacity is not positive.
	ErrInvalidCapacity = errors.New("cache: capacity must be > 0")

	// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
	ErrNoLoader = errors.New("cache: no Loader provided")

	// ErrNilValue is returned by GetOrLoad when the Loader returned neither
	// a value nor an error.
	ErrNilValue = errors.New("cache: loader returned a nil value")

	// ErrUnsupportedKey is returned by NewSharded when Options.Hash is nil
	// and the default hasher cannot handle the key type.
	ErrUnsupportedKey = errors.New("cache: key type needs Options.Hash")

	// ErrClosed is returned by GetOrLoad after Close.
	ErrClosed = errors.New("cache: closed")
)
