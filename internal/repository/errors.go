// Package repository implements data access over GORM. Every user-scoped
// query filters by user_id; ownership is enforced here, not in handlers.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist or does not
	// belong to the requesting user.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameExists is returned when registering a duplicate username.
	ErrUsernameExists = errors.New("username already exists")
	// ErrDuplicateOrder is returned when a payment reuses an order id.
	ErrDuplicateOrder = errors.New("order id already exists")
)

// translate maps driver errors to package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
