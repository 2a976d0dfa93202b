package handler

import "errors"

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACEFatalLogMsg is used if app or cfg or engine var pointer is nil.
	ErrNilACEFatalLogMsg = "app, cfg or engine is nil"
)

// ErrNilDependency is returned when a handler or the web service is built without its dependencies.
var ErrNilDependency = errors.New(ErrNilACEFatalLogMsg)
