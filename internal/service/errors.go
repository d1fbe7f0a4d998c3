package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoUser             = errors.New("no user found, please sign up first")
)
