package filestore

import (
	"context"
	"reflect"

	"github.com/amirasaad/subtracker/pkg/repository"
)

// UoW is the file backend's UnitOfWork. Collections are written as each
// repository call completes, so Do gives no rollback.
type UoW struct {
	store *Store
}

// NewUoW creates a UnitOfWork over store.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn with this unit of work.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(u)
}

// GetRepository returns the repository for repoType.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	return repository.Resolve(u, repoType)
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return &userRepository{c: u.store.users}, nil
}

func (u *UoW) UploadRepository() (repository.UploadRepository, error) {
	return &uploadRepository{c: u.store.uploads}, nil
}

func (u *UoW) PaymentRepository() (repository.PaymentRepository, error) {
	return &paymentRepository{c: u.store.payments}, nil
}

func (u *UoW) ReminderRepository() (repository.ReminderRepository, error) {
	return &reminderRepository{c: u.store.reminders}, nil
}

func (u *UoW) ReminderHistoryRepository() (repository.ReminderHistoryRepository, error) {
	return &historyRepository{c: u.store.history}, nil
}
