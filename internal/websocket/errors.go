package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrClientClosed    = errors.New("client connection is closed")
	ErrInvalidEvent    = errors.New("invalid event format")
	ErrNotInRoom       = errors.New("you are not in this room")
	ErrAccessDenied    = errors.New("access denied")
	ErrEmptyMessage    = errors.New("room or message missing")
)
