package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/subtracker/infra/filestore"
	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/reminder"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	dir string
	uow repository.UnitOfWork
	ctx context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := filestore.New(s.dir)
	s.Require().NoError(err)
	s.uow = filestore.NewUoW(store)
	s.ctx = context.Background()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestUserUpsertKeepsCreatedAt() {
	repo, err := s.uow.UserRepository()
	s.Require().NoError(err)

	id := uuid.New()
	u := user.New(id, "a@example.com", "Ada", "", "")
	s.Require().NoError(repo.Upsert(s.ctx, u))
	first, err := repo.Get(s.ctx, id)
	s.Require().NoError(err)

	again := user.New(id, "a@example.com", "Ada", "Lovelace", "")
	again.CreatedAt = time.Now().Add(time.Hour)
	s.Require().NoError(repo.Upsert(s.ctx, again))

	got, err := repo.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Lovelace", got.LastName)
	s.True(first.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.Get(s.ctx, uuid.New())
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreTestSuite) TestUploadTransitions() {
	repo, err := s.uow.UploadRepository()
	s.Require().NoError(err)

	u := upload.New(uuid.New(), "a.pdf", "application/pdf", "/tmp/a.pdf", 3)
	s.Require().NoError(repo.Create(s.ctx, u))

	err = repo.Transition(s.ctx, u.ID, upload.StatusProcessing, upload.StatusCompleted, nil)
	s.ErrorIs(err, domain.ErrInvalidTransition)

	s.Require().NoError(repo.Transition(s.ctx, u.ID, upload.StatusPending, upload.StatusProcessing, nil))
	results := &upload.AnalysisResults{TotalRecurringPayments: 5, MonthlyTotal: money.MustParse("60.00")}
	s.Require().NoError(repo.Transition(s.ctx, u.ID, upload.StatusProcessing, upload.StatusCompleted, results))

	got, err := repo.Get(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(upload.StatusCompleted, got.AnalysisStatus)
	s.Require().NotNil(got.AnalysisResults)
	s.Equal("60.00", got.AnalysisResults.MonthlyTotal.String())

	err = repo.Transition(s.ctx, u.ID, upload.StatusCompleted, upload.StatusFailed, nil)
	s.ErrorIs(err, domain.ErrInvalidTransition)

	err = repo.Transition(s.ctx, uuid.New(), upload.StatusPending, upload.StatusProcessing, nil)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreTestSuite) TestUploadsNewestFirst() {
	repo, err := s.uow.UploadRepository()
	s.Require().NoError(err)
	userID := uuid.New()

	older := upload.New(userID, "old.pdf", "application/pdf", "", 1)
	older.UploadDate = time.Now().Add(-time.Hour)
	newer := upload.New(userID, "new.pdf", "application/pdf", "", 1)
	other := upload.New(uuid.New(), "other.pdf", "application/pdf", "", 1)
	for _, u := range []*upload.Upload{older, newer, other} {
		s.Require().NoError(repo.Create(s.ctx, u))
	}

	list, err := repo.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("new.pdf", list[0].FileName)
	s.Equal("old.pdf", list[1].FileName)
}

func (s *StoreTestSuite) TestPaymentUpdateStatusScopedToOwner() {
	repo, err := s.uow.PaymentRepository()
	s.Require().NoError(err)
	owner := uuid.New()
	p := payment.NewDetected(owner, uuid.New(), "Netflix", money.MustParse("15.99"), payment.FrequencyMonthly, "entertainment", 0.95)
	s.Require().NoError(repo.Create(s.ctx, p))

	_, err = repo.UpdateStatus(s.ctx, uuid.New(), p.ID, payment.StatusCancelled)
	s.ErrorIs(err, domain.ErrNotFound)

	updated, err := repo.UpdateStatus(s.ctx, owner, p.ID, payment.StatusCancelled)
	s.Require().NoError(err)
	s.Equal(payment.StatusCancelled, updated.Status)

	byUpload, err := repo.ListByUpload(s.ctx, *p.UploadID)
	s.Require().NoError(err)
	s.Require().Len(byUpload, 1)
	s.Equal(payment.StatusCancelled, byUpload[0].Status)
}

func (s *StoreTestSuite) TestReminderUpsertKeepsIDAndCreatedAt() {
	repo, err := s.uow.ReminderRepository()
	s.Require().NoError(err)
	userID := uuid.New()

	_, err = repo.GetByUser(s.ctx, userID)
	s.ErrorIs(err, domain.ErrNotFound)

	first, err := repo.Upsert(s.ctx, &reminder.Reminder{
		UserID: userID, Frequency: reminder.FrequencyWeekly, SendTime: reminder.SendTimeFirstDay, IsActive: true,
	})
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, first.ID)

	second, err := repo.Upsert(s.ctx, &reminder.Reminder{
		ID: uuid.New(), UserID: userID, Frequency: reminder.FrequencyQuarterly, SendTime: reminder.SendTime15th,
	})
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.True(first.CreatedAt.Equal(second.CreatedAt))
	s.Equal(reminder.FrequencyQuarterly, second.Frequency)
	s.False(second.IsActive)

	active, err := repo.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Empty(active)

	now := time.Now()
	s.Require().NoError(repo.MarkSent(s.ctx, userID, now))
	got, err := repo.GetByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().NotNil(got.LastSent)
	s.True(got.LastSent.Equal(now))
}

func (s *StoreTestSuite) TestHistoryNewestFirst() {
	repo, err := s.uow.ReminderHistoryRepository()
	s.Require().NoError(err)
	userID := uuid.New()
	for i := range 3 {
		s.Require().NoError(repo.Create(s.ctx, &reminder.History{
			ID:       uuid.New(),
			UserID:   userID,
			SentDate: time.Now().Add(time.Duration(i) * time.Minute),
			Status:   reminder.HistoryDelivered,
		}))
	}
	list, err := repo.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.True(list[0].SentDate.After(list[1].SentDate))
	s.True(list[1].SentDate.After(list[2].SentDate))
}

func (s *StoreTestSuite) TestDataSurvivesReopen() {
	repo, err := s.uow.UploadRepository()
	s.Require().NoError(err)
	u := upload.New(uuid.New(), "a.png", "image/png", "/tmp/a.png", 42)
	s.Require().NoError(repo.Create(s.ctx, u))

	store, err := filestore.New(s.dir)
	s.Require().NoError(err)
	reopened, err := filestore.NewUoW(store).UploadRepository()
	s.Require().NoError(err)
	got, err := reopened.Get(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(int64(42), got.FileSize)
	s.Equal("/tmp/a.png", got.FilePath)

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	for _, e := range entries {
		s.NotEqual(".tmp", filepath.Ext(e.Name()), "temp file left behind: %s", e.Name())
	}
}

func TestConcurrentCreatesLoseNothing(t *testing.T) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	repo, err := filestore.NewUoW(store).PaymentRepository()
	require.NoError(t, err)

	userID := uuid.New()
	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := payment.NewDetected(userID, uuid.New(), "Spotify Premium", money.MustParse("9.99"), payment.FrequencyMonthly, "entertainment", 0.92)
			assert.NoError(t, repo.Create(context.Background(), p))
		}()
	}
	wg.Wait()

	list, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestCancelledContext(t *testing.T) {
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	repo, err := filestore.NewUoW(store).UserRepository()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}
