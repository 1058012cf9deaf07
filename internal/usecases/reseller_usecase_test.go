package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/usecases"
	"trimly.backend/pkg/crypto"
)

func TestIssueAPIKey_ReturnsPlaintextOnce(t *testing.T) {
	resellerRepo := new(MockResellerRepository)
	apiKeyRepo := new(MockResellerAPIKeyRepository)
	uc := usecases.NewResellerUsecase(resellerRepo, apiKeyRepo)

	resellerID := uuid.New()
	resellerRepo.On("GetByID", mock.Anything, resellerID).Return(&entities.Reseller{ID: resellerID}, nil)
	apiKeyRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.ResellerAPIKey")).Return(nil)

	key, plaintext, err := uc.IssueAPIKey(context.Background(), resellerID)
	require.NoError(t, err)
	require.NotEmpty(t, plaintext)
	require.NotEqual(t, plaintext, key.KeyHash)

	prefix, secret, ok := crypto.SplitAPIKey(plaintext)
	require.True(t, ok)
	require.Equal(t, key.KeyPrefix, prefix)
	require.True(t, crypto.CheckSecret(secret, key.KeyHash))
}

func TestAuthenticateAPIKey_Success(t *testing.T) {
	resellerRepo := new(MockResellerRepository)
	apiKeyRepo := new(MockResellerAPIKeyRepository)
	uc := usecases.NewResellerUsecase(resellerRepo, apiKeyRepo)

	full, prefix, secret, err := crypto.GenerateAPIKey()
	require.NoError(t, err)
	hash, err := crypto.HashSecret(secret)
	require.NoError(t, err)

	resellerID := uuid.New()
	keyID := uuid.New()
	apiKeyRepo.On("GetByPrefix", mock.Anything, prefix).Return(&entities.ResellerAPIKey{
		ID: keyID, ResellerID: resellerID, KeyPrefix: prefix, KeyHash: hash, Active: true,
	}, nil)
	apiKeyRepo.On("TouchLastUsed", mock.Anything, keyID).Return(nil)
	resellerRepo.On("GetByID", mock.Anything, resellerID).Return(&entities.Reseller{ID: resellerID}, nil)

	reseller, err := uc.AuthenticateAPIKey(context.Background(), full)
	require.NoError(t, err)
	require.Equal(t, resellerID, reseller.ID)
}

func TestAuthenticateAPIKey_Failures(t *testing.T) {
	resellerRepo := new(MockResellerRepository)
	apiKeyRepo := new(MockResellerAPIKeyRepository)
	uc := usecases.NewResellerUsecase(resellerRepo, apiKeyRepo)

	_, err := uc.AuthenticateAPIKey(context.Background(), "garbage")
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	full, prefix, secret, err := crypto.GenerateAPIKey()
	require.NoError(t, err)
	hash, err := crypto.HashSecret(secret)
	require.NoError(t, err)
	apiKeyRepo.On("GetByPrefix", mock.Anything, prefix).Return(&entities.ResellerAPIKey{
		ID: uuid.New(), ResellerID: uuid.New(), KeyPrefix: prefix, KeyHash: hash, Active: false,
	}, nil)

	// Revoked keys fail the same way as unknown ones.
	_, err = uc.AuthenticateAPIKey(context.Background(), full)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestCreateReseller_ValidatesFeePercent(t *testing.T) {
	uc := usecases.NewResellerUsecase(new(MockResellerRepository), new(MockResellerAPIKeyRepository))

	bad := 150.0
	_, err := uc.CreateReseller(context.Background(), &entities.CreateResellerInput{
		Name: "Overcharger", PlatformFeePercent: &bad,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
