package domain

import "errors"

var (
	ErrMailerNotConfigured = errors.New("mail sender is not configured")
	ErrUnknownForm         = errors.New("unknown form type")
)

func IsMailerNotConfigured(err error) bool {
	return errors.Is(err, ErrMailerNotConfigured)
}
