package requestgen

import "github.com/thorn-jmh/errorst"

var (
	ErrModelNotFound  = errorst.NewError("model not found")
	ErrUnknownEmitter = errorst.NewError("unknown emitter")
	ErrEmitFailure    = errorst.NewError("failed to render request")
	ErrWriteFailure   = errorst.NewError("failed to write request file")
)
