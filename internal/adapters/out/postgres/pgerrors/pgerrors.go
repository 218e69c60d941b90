// Package pgerrors classifies driver errors shared by the gorm repositories.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique or primary key violation.
// gorm translates driver errors when TranslateError is enabled; connections opened
// through lib/pq surface *pq.Error directly.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
