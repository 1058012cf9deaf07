package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/domain/repositories"
	"trimly.backend/pkg/crypto"
	"trimly.backend/pkg/logger"
	"trimly.backend/pkg/utils"
)

// ResellerUsecase administers white-label operators and their API keys
type ResellerUsecase struct {
	resellerRepo repositories.ResellerRepository
	apiKeyRepo   repositories.ResellerAPIKeyRepository
}

// NewResellerUsecase creates a new reseller usecase
func NewResellerUsecase(
	resellerRepo repositories.ResellerRepository,
	apiKeyRepo repositories.ResellerAPIKeyRepository,
) *ResellerUsecase {
	return &ResellerUsecase{
		resellerRepo: resellerRepo,
		apiKeyRepo:   apiKeyRepo,
	}
}

// CreateReseller registers a white-label operator
func (u *ResellerUsecase) CreateReseller(ctx context.Context, input *entities.CreateResellerInput) (*entities.Reseller, error) {
	reseller := &entities.Reseller{
		ID:   utils.GenerateUUIDv7(),
		Name: input.Name,
	}
	if input.PlatformFeePercent != nil {
		if *input.PlatformFeePercent < 0 || *input.PlatformFeePercent > 100 {
			return nil, domainerrors.BadRequest("fee rate must be between 0 and 100")
		}
		reseller.PlatformFeePercent = null.Float64From(*input.PlatformFeePercent)
	}
	if input.BrandDomain != "" {
		reseller.BrandDomain = null.StringFrom(input.BrandDomain)
	}
	if err := u.resellerRepo.Create(ctx, reseller); err != nil {
		return nil, err
	}
	return reseller, nil
}

// GetReseller returns a reseller by id
func (u *ResellerUsecase) GetReseller(ctx context.Context, id uuid.UUID) (*entities.Reseller, error) {
	return u.resellerRepo.GetByID(ctx, id)
}

// ListResellers returns every reseller
func (u *ResellerUsecase) ListResellers(ctx context.Context) ([]*entities.Reseller, error) {
	return u.resellerRepo.List(ctx)
}

// SetPlatformFee sets the fee rate applied to the reseller's white-label
// businesses
func (u *ResellerUsecase) SetPlatformFee(ctx context.Context, id uuid.UUID, percent float64) (*entities.Reseller, error) {
	if percent < 0 || percent > 100 {
		return nil, domainerrors.BadRequest("fee rate must be between 0 and 100")
	}
	reseller, err := u.resellerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reseller.PlatformFeePercent = null.Float64From(percent)
	if err := u.resellerRepo.Update(ctx, reseller); err != nil {
		return nil, err
	}
	return reseller, nil
}

// IssueAPIKey mints a new console key for the reseller. The plaintext key
// is returned exactly once; only its bcrypt hash is stored.
func (u *ResellerUsecase) IssueAPIKey(ctx context.Context, resellerID uuid.UUID) (*entities.ResellerAPIKey, string, error) {
	if _, err := u.resellerRepo.GetByID(ctx, resellerID); err != nil {
		return nil, "", err
	}

	plaintext, prefix, secret, err := crypto.GenerateAPIKey()
	if err != nil {
		return nil, "", domainerrors.InternalError(err)
	}
	hash, err := crypto.HashSecret(secret)
	if err != nil {
		return nil, "", domainerrors.InternalError(err)
	}

	key := &entities.ResellerAPIKey{
		ID:         utils.GenerateUUIDv7(),
		ResellerID: resellerID,
		KeyPrefix:  prefix,
		KeyHash:    hash,
		Active:     true,
	}
	if err := u.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, "", err
	}

	logger.Info(ctx, "reseller api key issued",
		zap.String("reseller_id", resellerID.String()),
		zap.String("key_prefix", prefix))
	return key, plaintext, nil
}

// AuthenticateAPIKey resolves a presented key to its reseller. Inactive
// keys and wrong secrets fail identically.
func (u *ResellerUsecase) AuthenticateAPIKey(ctx context.Context, presented string) (*entities.Reseller, error) {
	prefix, secret, ok := crypto.SplitAPIKey(presented)
	if !ok {
		return nil, domainerrors.Unauthorized("invalid api key")
	}
	key, err := u.apiKeyRepo.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid api key")
	}
	if !key.Active || !crypto.CheckSecret(secret, key.KeyHash) {
		return nil, domainerrors.Unauthorized("invalid api key")
	}
	if err := u.apiKeyRepo.TouchLastUsed(ctx, key.ID); err != nil {
		logger.Warn(ctx, "failed to record api key use", zap.Error(err))
	}
	return u.resellerRepo.GetByID(ctx, key.ResellerID)
}

// RevokeAPIKey deactivates a console key
func (u *ResellerUsecase) RevokeAPIKey(ctx context.Context, keyID uuid.UUID) error {
	return u.apiKeyRepo.Deactivate(ctx, keyID)
}
