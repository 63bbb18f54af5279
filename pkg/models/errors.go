package models

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidRecurrence  = errors.New("invalid recurrence")
	ErrRecurrenceMismatch = errors.New("recurrence set on a non-recurring expense")
)
