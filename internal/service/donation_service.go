package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
)

const donationStatsCacheKey = "stats:donations:monthly"

type donationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	ListByUser(ctx context.Context, userID string) ([]models.Donation, error)
	MonthlyTotals(ctx context.Context) ([]models.MonthlyDonation, error)
}

// DonationService records donations and serves the monthly aggregation.
// There is no payment gateway behind it: the transaction id is synthesized
// at creation time and every record starts pending.
type DonationService struct {
	repo      donationRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cacheTTL  time.Duration
}

// NewDonationService constructs a DonationService instance.
func NewDonationService(repo donationRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *DonationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &DonationService{repo: repo, cache: cache, validator: validate, logger: logger, now: time.Now, cacheTTL: cacheTTL}
}

// Donate records a donation for the given user.
func (s *DonationService) Donate(ctx context.Context, userID string, req models.DonationRequest) (*models.Donation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid donation payload")
	}

	donation := &models.Donation{
		UserID:        userID,
		Amount:        req.Amount,
		Purpose:       req.Purpose,
		PaymentMethod: req.PaymentMethod,
		TransactionID: s.transactionID(),
		Status:        models.DonationPending,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record donation")
	}

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, donationStatsCacheKey); err != nil {
			s.logger.Warn("failed to invalidate donation stats cache", zap.Error(err))
		}
	}

	return donation, nil
}

// History returns the caller's donations, newest first.
func (s *DonationService) History(ctx context.Context, userID string) ([]models.Donation, error) {
	donations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load donation history")
	}
	if donations == nil {
		donations = []models.Donation{}
	}
	return donations, nil
}

// MonthlyStats groups donation totals by calendar month, ascending. The
// result is cached when a cache is wired; new donations invalidate it.
func (s *DonationService) MonthlyStats(ctx context.Context) ([]models.MonthlyDonation, bool, error) {
	var cached []models.MonthlyDonation
	if hit, err := s.cache.Get(ctx, donationStatsCacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	totals, err := s.repo.MonthlyTotals(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate donations")
	}
	if totals == nil {
		totals = []models.MonthlyDonation{}
	}

	if err := s.cache.Set(ctx, donationStatsCacheKey, totals, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache donation stats", zap.Error(err))
	}

	return totals, false, nil
}

// transactionID synthesizes an identifier from the current UTC timestamp,
// suffixed to keep concurrent donations distinct.
func (s *DonationService) transactionID() string {
	stamp := s.now().UTC().Format("20060102150405")
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("TXN%s-%s", stamp, suffix)
}
