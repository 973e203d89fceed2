package loans

import "errors"

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrAlreadyBorrowed  = errors.New("item already borrowed")
	ErrAlreadyAvailable = errors.New("item already available")
	ErrLoanFailed       = errors.New("could not register the loan")
	ErrReturnFailed     = errors.New("could not return the item")
)
