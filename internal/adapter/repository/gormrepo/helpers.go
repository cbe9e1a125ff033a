package gormrepo

import (
	"errors"

	"gorm.io/gorm"
)

// translate maps gorm's not-found sentinel onto the domain's own.
func translate(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
