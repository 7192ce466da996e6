package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateCode   = errors.New("code already exists")
	ErrAlreadyRedeemed = errors.New("signal fire already redeemed")
	ErrExpired         = errors.New("signal fire expired")
)
