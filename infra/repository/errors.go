package repository

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicate reports whether the error chain contains a unique-constraint
// violation. gorm's TranslateError folds the Postgres 23505 code into
// ErrDuplicatedKey.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether the error chain is a lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
