package database

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrEmailTaken      = errors.New("email has already registered")
	ErrChatNameTaken   = errors.New("chat name already taken")
	ErrAlreadyMember   = errors.New("already a member of this chat")
	ErrSamePrivateUser = errors.New("private chat requires two distinct users")
)
