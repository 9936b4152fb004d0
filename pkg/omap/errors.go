package omap

import "errors"

var (
	ErrDuplicateKey    = errors.New("omap: duplicate key")
	ErrKeyNotFound     = errors.New("omap: key not found")
	ErrIndexOutOfRange = errors.New("omap: index out of range")
	ErrInvalidArgument = errors.New("omap: invalid argument")
)
