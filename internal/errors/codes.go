// Package errors provides structured error handling for the editing core.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotLoaded indicates the named asset is not loaded in the session.
	CodeNotLoaded Code = "NOT_LOADED"

	// CodeNotFound indicates a missing layer, frame, tag, cel, project, or
	// registry entry.
	CodeNotFound Code = "NOT_FOUND"

	// CodeOutOfRange indicates a palette index, color channel, or frame
	// index outside its valid range.
	CodeOutOfRange Code = "OUT_OF_RANGE"

	// CodeTypeMismatch indicates a cel payload that does not match the
	// owning layer's type.
	CodeTypeMismatch Code = "TYPE_MISMATCH"

	// CodeInvalidArgument indicates malformed input such as a bad cel key,
	// a malformed color, or an inverted tag range.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeEmptyStack indicates an undo or redo with nothing pending.
	CodeEmptyStack Code = "EMPTY_STACK"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeNotLoaded, CodeNotFound:
		return codes.NotFound
	case CodeOutOfRange:
		return codes.OutOfRange
	case CodeTypeMismatch, CodeInvalidArgument:
		return codes.InvalidArgument
	case CodeEmptyStack:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}
