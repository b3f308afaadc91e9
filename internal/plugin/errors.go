package plugin

import "errors"

// Loader and registration errors.
var (
	// ErrNotADirectory is returned when an add-on root or target directory
	// does not exist or is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrInvalidTarget is returned for target directory names that cannot
	// form part of a module identifier.
	ErrInvalidTarget = errors.New("invalid target directory")

	// ErrInvalidManifest is returned when a manifest's ignore value is not
	// a list of module fragments.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrAlreadyRegistered is returned when registering an add-on twice.
	ErrAlreadyRegistered = errors.New("add-on is already registered")

	// ErrNotRegistered is returned when unregistering an add-on that is not registered.
	ErrNotRegistered = errors.New("add-on is not registered")

	// ErrNoHost is returned when registration is attempted without a class registry.
	ErrNoHost = errors.New("no host class registry configured")

	// ErrNotDebug is returned by operations only available in debug mode.
	ErrNotDebug = errors.New("debug mode is not enabled")

	// ErrLoaderClosed is returned when using a closed loader.
	ErrLoaderClosed = errors.New("loader is closed")
)
