package analysis_test

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	infrastorage "github.com/amirasaad/subtracker/infra/storage"
	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/amirasaad/subtracker/pkg/queue"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/amirasaad/subtracker/pkg/service/analysis"
	"github.com/amirasaad/subtracker/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type analyzerFunc func(ctx context.Context, u *upload.Upload, r io.Reader) (*upload.AnalysisResults, error)

func (f analyzerFunc) Analyze(ctx context.Context, u *upload.Upload, r io.Reader) (*upload.AnalysisResults, error) {
	return f(ctx, u, r)
}

func TestMockAnalyzer(t *testing.T) {
	a := analysis.NewMockAnalyzer(rand.NewSource(42))
	for range 50 {
		res, err := a.Analyze(context.Background(), &upload.Upload{}, strings.NewReader(""))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.TotalRecurringPayments, 5)
		assert.Less(t, res.TotalRecurringPayments, 20)
		assert.True(t, res.MonthlyTotal.GreaterThanOrEqual(money.MustParse("50").Decimal))
		assert.True(t, res.MonthlyTotal.LessThan(money.MustParse("250").Decimal))
		require.Len(t, res.DetectedPayments, 3)
	}

	res, err := a.Analyze(context.Background(), &upload.Upload{}, nil)
	require.NoError(t, err)
	names := make([]string, 0, 3)
	for _, d := range res.DetectedPayments {
		names = append(names, d.MerchantName)
		assert.Equal(t, payment.FrequencyMonthly, d.Frequency)
	}
	assert.Equal(t, []string{"Netflix", "Spotify Premium", "Adobe Creative Cloud"}, names)
	assert.Equal(t, "15.99", res.DetectedPayments[0].Amount.String())
	assert.Equal(t, "software", res.DetectedPayments[2].Category)
	assert.InDelta(t, 0.88, res.DetectedPayments[2].Confidence, 1e-9)
}

func TestMockAnalyzerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := analysis.NewMockAnalyzer(rand.NewSource(1)).Analyze(ctx, &upload.Upload{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

type ProcessorTestSuite struct {
	suite.Suite
	uow    repository.UnitOfWork
	blobs  *infrastorage.LocalStore
	userID uuid.UUID
}

func TestProcessorTestSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func (s *ProcessorTestSuite) SetupTest() {
	s.uow = testutils.NewFileUoW(s.T())
	blobs, err := infrastorage.NewLocalStore(s.T().TempDir())
	s.Require().NoError(err)
	s.blobs = blobs
	s.userID = testutils.SeedUser(s.T(), s.uow, "p@example.com").ID
}

func (s *ProcessorTestSuite) newUpload() queue.Job {
	ctx := context.Background()
	obj, err := s.blobs.Put(ctx, "statement.csv", strings.NewReader("date,amount\n"), 1024)
	s.Require().NoError(err)
	u := upload.New(s.userID, "statement.csv", obj.ContentType, obj.Path, obj.Size)
	repo, err := s.uow.UploadRepository()
	s.Require().NoError(err)
	s.Require().NoError(repo.Create(ctx, u))
	return queue.Job{UploadID: u.ID, UserID: s.userID, FileName: u.FileName, SubmittedAt: time.Now()}
}

func (s *ProcessorTestSuite) stored(id uuid.UUID) *upload.Upload {
	repo, err := s.uow.UploadRepository()
	s.Require().NoError(err)
	u, err := repo.Get(context.Background(), id)
	s.Require().NoError(err)
	return u
}

func (s *ProcessorTestSuite) payments(id uuid.UUID) []*payment.RecurringPayment {
	repo, err := s.uow.PaymentRepository()
	s.Require().NoError(err)
	ps, err := repo.ListByUpload(context.Background(), id)
	s.Require().NoError(err)
	return ps
}

func (s *ProcessorTestSuite) processor(a analysis.Analyzer) *analysis.Processor {
	return analysis.NewProcessor(s.uow, s.blobs, a, testutils.DiscardLogger(),
		analysis.WithStartDelay(0), analysis.WithProcessDelay(0))
}

func (s *ProcessorTestSuite) TestCompletes() {
	job := s.newUpload()
	p := s.processor(analysis.NewMockAnalyzer(rand.NewSource(7)))

	s.Require().NoError(p.Handle(context.Background(), job))

	u := s.stored(job.UploadID)
	s.Equal(upload.StatusCompleted, u.AnalysisStatus)
	s.Require().NotNil(u.AnalysisResults)
	s.Len(u.AnalysisResults.DetectedPayments, 3)

	ps := s.payments(job.UploadID)
	s.Len(ps, 3)
	for _, p := range ps {
		s.Equal(s.userID, p.UserID)
		s.Equal(payment.StatusActive, p.Status)
		s.Require().NotNil(p.UploadID)
		s.Equal(job.UploadID, *p.UploadID)
	}
}

func (s *ProcessorTestSuite) TestAnalyzerReadsStoredContent() {
	job := s.newUpload()
	var seen string
	p := s.processor(analyzerFunc(func(_ context.Context, _ *upload.Upload, r io.Reader) (*upload.AnalysisResults, error) {
		b, err := io.ReadAll(r)
		seen = string(b)
		return &upload.AnalysisResults{MonthlyTotal: money.Zero}, err
	}))

	s.Require().NoError(p.Handle(context.Background(), job))
	s.Equal("date,amount\n", seen)
	s.Equal(upload.StatusCompleted, s.stored(job.UploadID).AnalysisStatus)
	s.Empty(s.payments(job.UploadID))
}

func (s *ProcessorTestSuite) TestAnalyzerErrorMarksFailed() {
	job := s.newUpload()
	boom := errors.New("boom")
	p := s.processor(analyzerFunc(func(context.Context, *upload.Upload, io.Reader) (*upload.AnalysisResults, error) {
		return nil, boom
	}))

	err := p.Handle(context.Background(), job)
	s.ErrorIs(err, boom)
	u := s.stored(job.UploadID)
	s.Equal(upload.StatusFailed, u.AnalysisStatus)
	s.Nil(u.AnalysisResults)
	s.Empty(s.payments(job.UploadID))
}

func (s *ProcessorTestSuite) TestAnalyzerPanicMarksFailed() {
	job := s.newUpload()
	p := s.processor(analyzerFunc(func(context.Context, *upload.Upload, io.Reader) (*upload.AnalysisResults, error) {
		panic("bad input")
	}))

	s.Error(p.Handle(context.Background(), job))
	s.Equal(upload.StatusFailed, s.stored(job.UploadID).AnalysisStatus)
}

func (s *ProcessorTestSuite) TestMissingBlobMarksFailed() {
	job := s.newUpload()
	u := s.stored(job.UploadID)
	s.Require().NoError(s.blobs.Delete(context.Background(), u.FilePath))

	err := s.processor(analysis.NewMockAnalyzer(rand.NewSource(1))).Handle(context.Background(), job)
	s.ErrorIs(err, domain.ErrNotFound)
	s.Equal(upload.StatusFailed, s.stored(job.UploadID).AnalysisStatus)
}

func (s *ProcessorTestSuite) TestCancelledBeforeStartStaysPending() {
	job := s.newUpload()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := analysis.NewProcessor(s.uow, s.blobs, analysis.NewMockAnalyzer(rand.NewSource(1)),
		testutils.DiscardLogger(), analysis.WithStartDelay(time.Hour))

	s.ErrorIs(p.Handle(ctx, job), context.Canceled)
	s.Equal(upload.StatusPending, s.stored(job.UploadID).AnalysisStatus)
}

func (s *ProcessorTestSuite) TestCancelledWhileProcessingMarksFailed() {
	job := s.newUpload()
	ctx, cancel := context.WithCancel(context.Background())
	p := analysis.NewProcessor(s.uow, s.blobs, analyzerFunc(func(ctx context.Context, _ *upload.Upload, _ io.Reader) (*upload.AnalysisResults, error) {
		cancel()
		return nil, ctx.Err()
	}), testutils.DiscardLogger(), analysis.WithStartDelay(0), analysis.WithProcessDelay(0))

	s.ErrorIs(p.Handle(ctx, job), context.Canceled)
	s.Equal(upload.StatusFailed, s.stored(job.UploadID).AnalysisStatus)
}

func (s *ProcessorTestSuite) TestAlreadyProcessedIsNotRerun() {
	job := s.newUpload()
	p := s.processor(analysis.NewMockAnalyzer(rand.NewSource(3)))
	s.Require().NoError(p.Handle(context.Background(), job))

	err := p.Handle(context.Background(), job)
	s.ErrorIs(err, domain.ErrInvalidTransition)
	s.Equal(upload.StatusCompleted, s.stored(job.UploadID).AnalysisStatus)
	s.Len(s.payments(job.UploadID), 3)
}

func (s *ProcessorTestSuite) TestUnknownUpload() {
	job := queue.Job{UploadID: uuid.New(), UserID: s.userID}
	err := s.processor(analysis.NewMockAnalyzer(rand.NewSource(1))).Handle(context.Background(), job)
	s.ErrorIs(err, domain.ErrNotFound)
}
