package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"trimly.backend/internal/config"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/usecases"
)

func testPaymentsConfig() config.PaymentsConfig {
	return config.PaymentsConfig{
		DefaultFeePercent:             5.0,
		DefaultWhiteLabelFeePercent:   1.0,
		DefaultStaffCommissionPercent: 60.0,
		PayoutLookback:                7 * 24 * time.Hour,
		SettlementGrace:               time.Hour,
		WebhookSecret:                 "whsec_test",
	}
}

func TestFeeResolver_StandardDefault(t *testing.T) {
	businessRepo := new(MockBusinessRepository)
	resellerRepo := new(MockResellerRepository)
	resolver := usecases.NewFeeResolver(businessRepo, resellerRepo, testPaymentsConfig())

	businessID := uuid.New()
	businessRepo.On("GetByID", mock.Anything, businessID).Return(&entities.Business{
		ID:     businessID,
		Status: entities.BusinessStatusActive,
	}, nil)

	quote, err := resolver.Quote(context.Background(), businessID, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	require.Equal(t, "5", quote.PlatformFee.String())
	require.Equal(t, "95", quote.BusinessAmount.String())
	require.True(t, quote.PlatformFee.Add(quote.BusinessAmount).Equal(quote.GrossAmount))
}

func TestFeeResolver_ConfiguredRate(t *testing.T) {
	businessRepo := new(MockBusinessRepository)
	resellerRepo := new(MockResellerRepository)
	resolver := usecases.NewFeeResolver(businessRepo, resellerRepo, testPaymentsConfig())

	businessID := uuid.New()
	businessRepo.On("GetByID", mock.Anything, businessID).Return(&entities.Business{
		ID:             businessID,
		FeeRatePercent: null.Float64From(7.5),
	}, nil)

	rate, err := resolver.Resolve(context.Background(), businessID)
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.RequireFromString("0.075")))
}

func TestFeeResolver_WhiteLabelUsesResellerRate(t *testing.T) {
	businessRepo := new(MockBusinessRepository)
	resellerRepo := new(MockResellerRepository)
	resolver := usecases.NewFeeResolver(businessRepo, resellerRepo, testPaymentsConfig())

	businessID := uuid.New()
	resellerID := uuid.New()
	businessRepo.On("GetByID", mock.Anything, businessID).Return(&entities.Business{
		ID:           businessID,
		IsWhiteLabel: true,
		ResellerID:   &resellerID,
		// Own rate must be ignored for white-label tenants.
		FeeRatePercent: null.Float64From(50),
	}, nil)
	resellerRepo.On("GetByID", mock.Anything, resellerID).Return(&entities.Reseller{
		ID:                 resellerID,
		PlatformFeePercent: null.Float64From(2.5),
	}, nil)

	quote, err := resolver.Quote(context.Background(), businessID, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	require.Equal(t, "2.5", quote.PlatformFee.String())
	require.Equal(t, "97.5", quote.BusinessAmount.String())
}

func TestFeeResolver_WhiteLabelMissingRateFallsBack(t *testing.T) {
	businessRepo := new(MockBusinessRepository)
	resellerRepo := new(MockResellerRepository)
	resolver := usecases.NewFeeResolver(businessRepo, resellerRepo, testPaymentsConfig())

	businessID := uuid.New()
	resellerID := uuid.New()
	businessRepo.On("GetByID", mock.Anything, businessID).Return(&entities.Business{
		ID:           businessID,
		IsWhiteLabel: true,
		ResellerID:   &resellerID,
	}, nil)
	resellerRepo.On("GetByID", mock.Anything, resellerID).Return(&entities.Reseller{ID: resellerID}, nil)

	rate, err := resolver.Resolve(context.Background(), businessID)
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.RequireFromString("0.01")))
}

func TestSplitForRate_SumsBackToGross(t *testing.T) {
	gross := decimal.RequireFromString("33.33")
	fee, net := usecases.SplitForRate(gross, decimal.RequireFromString("0.0725"))
	require.True(t, fee.Add(net).Equal(gross))
	require.Equal(t, "2.42", fee.StringFixed(2))
}
