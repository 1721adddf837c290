package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB            *gorm.DB
	SessionSecret []byte
}

// isDuplicate reports whether err is a unique-constraint violation. The
// translated gorm sentinel covers postgres and sqlite; the string checks are
// a fallback for drivers that do not implement error translation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
