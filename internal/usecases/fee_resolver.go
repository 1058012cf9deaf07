package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"trimly.backend/internal/config"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/domain/repositories"
	"trimly.backend/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// FeeResolver resolves the platform fee rate of a tenant. The same
// resolver serves checkout quoting; settlement reads the rate snapshot
// stored on the Payment instead of resolving again, so the quoted and
// settled fee can never diverge.
type FeeResolver struct {
	businessRepo repositories.BusinessRepository
	resellerRepo repositories.ResellerRepository
	cfg          config.PaymentsConfig
}

// NewFeeResolver creates a new fee resolver
func NewFeeResolver(
	businessRepo repositories.BusinessRepository,
	resellerRepo repositories.ResellerRepository,
	cfg config.PaymentsConfig,
) *FeeResolver {
	return &FeeResolver{
		businessRepo: businessRepo,
		resellerRepo: resellerRepo,
		cfg:          cfg,
	}
}

// RateFor returns the fee rate in (0, 1) for a business. For white-label
// tenants the reseller's configured percentage wins; a missing
// configuration falls back to the documented default and is logged as a
// configuration defect, never failed.
func (f *FeeResolver) RateFor(ctx context.Context, business *entities.Business, reseller *entities.Reseller) decimal.Decimal {
	if business.IsWhiteLabel {
		if reseller != nil && reseller.PlatformFeePercent.Valid {
			return decimal.NewFromFloat(reseller.PlatformFeePercent.Float64).Div(oneHundred)
		}
		logger.Warn(ctx, "white-label tenant has no reseller fee rate, using default",
			zap.String("business_id", business.ID.String()))
		return decimal.NewFromFloat(f.cfg.DefaultWhiteLabelFeePercent).Div(oneHundred)
	}

	if business.FeeRatePercent.Valid {
		return decimal.NewFromFloat(business.FeeRatePercent.Float64).Div(oneHundred)
	}
	logger.Warn(ctx, "tenant has no fee rate configured, using default",
		zap.String("business_id", business.ID.String()))
	return decimal.NewFromFloat(f.cfg.DefaultFeePercent).Div(oneHundred)
}

// Resolve loads the business (and its reseller, when white-label) and
// returns the applicable fee rate.
func (f *FeeResolver) Resolve(ctx context.Context, businessID uuid.UUID) (decimal.Decimal, error) {
	business, err := f.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return decimal.Zero, err
	}

	var reseller *entities.Reseller
	if business.IsWhiteLabel && business.ResellerID != nil {
		reseller, err = f.resellerRepo.GetByID(ctx, *business.ResellerID)
		if err != nil {
			return decimal.Zero, err
		}
	}
	return f.RateFor(ctx, business, reseller), nil
}

// Quote produces the customer-visible fee breakdown for a gross amount.
// The fee is rounded to the currency minor unit; the business amount is the
// exact remainder so the two always sum back to the gross.
func (f *FeeResolver) Quote(ctx context.Context, businessID uuid.UUID, gross decimal.Decimal) (*entities.FeeQuote, error) {
	rate, err := f.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}
	fee := gross.Mul(rate).Round(2)
	return &entities.FeeQuote{
		GrossAmount:    gross,
		PlatformFee:    fee,
		BusinessAmount: gross.Sub(fee),
		FeeRate:        rate,
	}, nil
}

// SplitForRate splits a gross amount using an already-resolved rate, used
// at settlement time with the snapshot stored on the payment.
func SplitForRate(gross, rate decimal.Decimal) (platformFee, businessAmount decimal.Decimal) {
	platformFee = gross.Mul(rate).Round(2)
	return platformFee, gross.Sub(platformFee)
}
