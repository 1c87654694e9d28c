package common

import "errors"

// ErrNilProtocolVersion signals that an empty protocol version has been provided
var ErrNilProtocolVersion = errors.New("empty protocol version")

// ErrNilSubscribeHandler signals that a nil subscribe handler has been provided
var ErrNilSubscribeHandler = errors.New("nil subscribe handler")
