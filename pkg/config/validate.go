package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field formats and the settings that depend on each other.
func (a *App) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	var errs []error
	if a.Storage.Backend == "postgres" && a.DB.Url == "" {
		errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_BACKEND=postgres"))
	}
	if a.Auth.Strategy == "jwt" && a.Auth.Jwt.Secret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required when AUTH_STRATEGY=jwt"))
	}
	if a.Queue.Backend == "redis" && a.Redis.URL == "" {
		errs = append(errs, errors.New("REDIS_URL is required when QUEUE_BACKEND=redis"))
	}
	if a.Mail.Driver == "smtp" && a.Mail.Host == "" {
		errs = append(errs, errors.New("MAIL_HOST is required when MAIL_DRIVER=smtp"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address of the HTTP server.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MaxBodySize is the largest request body intake can receive: a full batch
// plus room for multipart framing.
func (u *Upload) MaxBodySize() int {
	return int(int64(u.MaxFiles)*u.MaxFileSize) + 1<<20
}
