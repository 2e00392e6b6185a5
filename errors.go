package fprint

import (
	"errors"
	"fmt"
)

// Deserialize rejections. Every cause unwraps to ErrInvalidFormat, so
// callers that do not care why a blob was rejected can match the base
// error alone.
var (
	ErrInvalidFormat  = errors.New("print data could not be parsed")
	ErrBadMagic       = fmt.Errorf("%w: missing FP3 header", ErrInvalidFormat)
	ErrBadEnvelope    = fmt.Errorf("%w: malformed envelope", ErrInvalidFormat)
	ErrColumnMismatch = fmt.Errorf("%w: xyt columns differ in length", ErrInvalidFormat)
	ErrTemplateTooBig = fmt.Errorf("%w: xyt template exceeds %d rows", ErrInvalidFormat, MaxTemplateRows)
	ErrUnknownType    = fmt.Errorf("%w: unknown print type", ErrInvalidFormat)
)

// State errors returned by print mutators and the minutiae converter.
var (
	ErrTypeAlreadySet = errors.New("print type can only be set once")
	ErrTypeNotSet     = errors.New("print type has not been set")
	ErrWrongType      = errors.New("print has the wrong type for this operation")
	ErrNoMinutiae     = errors.New("no minutiae found in image or not yet detected")
	ErrNotSinglePrint = errors.New("print must hold exactly one xyt template")
)

// Match preconditions. Both causes unwrap to ErrMatch.
var (
	ErrMatch      = errors.New("prints cannot be matched")
	ErrMatchTypes = fmt.Errorf("%w: it is only possible to match NBIS prints", ErrMatch)
	ErrMatchProbe = fmt.Errorf("%w: probe print must hold exactly one xyt template", ErrMatch)
)
