package repository

import (
	"context"
	"fmt"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Do runs the given function in a transaction boundary, providing a UnitOfWork for repository access.
// GetRepository provides access to repositories using the transaction session.
// Example usage:
//
//	repoAny, err := uow.GetRepository(reflect.TypeOf((*UploadRepository)(nil)).Elem())
//	repo := repoAny.(UploadRepository)
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the current transaction/session.
	GetRepository(repoType reflect.Type) (any, error)

	UserRepository() (UserRepository, error)
	UploadRepository() (UploadRepository, error)
	PaymentRepository() (PaymentRepository, error)
	ReminderRepository() (ReminderRepository, error)
	ReminderHistoryRepository() (ReminderHistoryRepository, error)
}

// Repository interface types accepted by GetRepository.
var (
	UserRepositoryType            = reflect.TypeOf((*UserRepository)(nil)).Elem()
	UploadRepositoryType          = reflect.TypeOf((*UploadRepository)(nil)).Elem()
	PaymentRepositoryType         = reflect.TypeOf((*PaymentRepository)(nil)).Elem()
	ReminderRepositoryType        = reflect.TypeOf((*ReminderRepository)(nil)).Elem()
	ReminderHistoryRepositoryType = reflect.TypeOf((*ReminderHistoryRepository)(nil)).Elem()
)

// Resolve implements GetRepository on top of the typed accessors, so backends
// only need to provide those.
func Resolve(uow UnitOfWork, repoType reflect.Type) (any, error) {
	switch repoType {
	case UserRepositoryType:
		return uow.UserRepository()
	case UploadRepositoryType:
		return uow.UploadRepository()
	case PaymentRepositoryType:
		return uow.PaymentRepository()
	case ReminderRepositoryType:
		return uow.ReminderRepository()
	case ReminderHistoryRepositoryType:
		return uow.ReminderHistoryRepository()
	default:
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
}
