package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/subtracker/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories obtained inside Do share the transaction session.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			repository.UserRepositoryType:            func(db *gorm.DB) any { return NewUserRepository(db) },
			repository.UploadRepositoryType:          func(db *gorm.DB) any { return NewUploadRepository(db) },
			repository.PaymentRepositoryType:         func(db *gorm.DB) any { return NewPaymentRepository(db) },
			repository.ReminderRepositoryType:        func(db *gorm.DB) any { return NewReminderRepository(db) },
			repository.ReminderHistoryRepositoryType: func(db *gorm.DB) any { return NewReminderHistoryRepository(db) },
		},
	}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns a repository bound to the transaction when inside Do,
// or to the base connection otherwise.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func getRepo[T any](u *UoW, repoType reflect.Type) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(repoType)
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("repository %v has unexpected type %T", repoType, repoAny)
	}
	return repo, nil
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return getRepo[repository.UserRepository](u, repository.UserRepositoryType)
}

func (u *UoW) UploadRepository() (repository.UploadRepository, error) {
	return getRepo[repository.UploadRepository](u, repository.UploadRepositoryType)
}

func (u *UoW) PaymentRepository() (repository.PaymentRepository, error) {
	return getRepo[repository.PaymentRepository](u, repository.PaymentRepositoryType)
}

func (u *UoW) ReminderRepository() (repository.ReminderRepository, error) {
	return getRepo[repository.ReminderRepository](u, repository.ReminderRepositoryType)
}

func (u *UoW) ReminderHistoryRepository() (repository.ReminderHistoryRepository, error) {
	return getRepo[repository.ReminderHistoryRepository](u, repository.ReminderHistoryRepositoryType)
}
