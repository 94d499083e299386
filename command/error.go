package command

import (
	"errors"
	"fmt"
)

const (
	// UnKnownCommandStr is the command not find
	UnKnownCommandStr = "ERR unknown command '%s'"
	// WrongArgs is for wrong number of arguments error
	WrongArgs = "ERR wrong number of arguments for '%s' command"
	// SubscribeModeStr is for commands sent in subscribe mode
	SubscribeModeStr = "ERR Can't execute '%s': only (P)SUBSCRIBE / (P)UNSUBSCRIBE / PING / QUIT are allowed in this context"
)

var (
	// OK is the simple string "OK" return to client
	OK = "OK"

	// ErrNoAuth Authentication required
	ErrNoAuth = errors.New("NOAUTH Authentication required.")

	// ErrAuthInvalid invalid password
	ErrAuthInvalid = errors.New("ERR invalid password")

	// ErrAuthUnSet Client sent AUTH, but no password is set
	ErrAuthUnSet = errors.New("ERR Client sent AUTH, but no password is set")

	// ErrInteger value is not an integer or out of range
	ErrInteger = errors.New("ERR value is not an integer or out of range")

	// ErrExpireTime invalid expire time
	ErrExpireTime = errors.New("ERR invalid expire time in set")

	// ErrSyntax syntax error
	ErrSyntax = errors.New("ERR syntax error")

	// ErrUnknownSubcommand unknown subcommand
	ErrUnknownSubcommand = errors.New("ERR Unknown subcommand or wrong number of arguments.")
)

//ErrUnKnownCommand return RedisError of the cmd
func ErrUnKnownCommand(cmd string) error {
	return fmt.Errorf(UnKnownCommandStr, cmd)
}

// ErrWrongArgs return RedisError of the cmd
func ErrWrongArgs(cmd string) error {
	return fmt.Errorf(WrongArgs, cmd)
}

// ErrSubscribeMode return RedisError of a cmd not allowed while subscribed
func ErrSubscribeMode(cmd string) error {
	return fmt.Errorf(SubscribeModeStr, cmd)
}
