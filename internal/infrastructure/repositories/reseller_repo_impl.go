package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	domainrepos "trimly.backend/internal/domain/repositories"
	"trimly.backend/internal/infrastructure/models"
	"trimly.backend/pkg/utils"
)

type resellerRepo struct {
	db *gorm.DB
}

func NewResellerRepository(db *gorm.DB) domainrepos.ResellerRepository {
	return &resellerRepo{db: db}
}

func (r *resellerRepo) Create(ctx context.Context, reseller *entities.Reseller) error {
	if reseller.ID == uuid.Nil {
		reseller.ID = utils.GenerateUUIDv7()
	}
	m := &models.Reseller{
		ID:        reseller.ID,
		Name:      reseller.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if reseller.PlatformFeePercent.Valid {
		v := reseller.PlatformFeePercent.Float64
		m.PlatformFeePercent = &v
	}
	if reseller.BrandDomain.Valid {
		v := reseller.BrandDomain.String
		m.BrandDomain = &v
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *resellerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Reseller, error) {
	var m models.Reseller
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toResellerEntity(&m), nil
}

func (r *resellerRepo) List(ctx context.Context) ([]*entities.Reseller, error) {
	var rows []models.Reseller
	if err := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Reseller, 0, len(rows))
	for i := range rows {
		items = append(items, toResellerEntity(&rows[i]))
	}
	return items, nil
}

func (r *resellerRepo) Update(ctx context.Context, reseller *entities.Reseller) error {
	updates := map[string]interface{}{
		"name":       reseller.Name,
		"updated_at": time.Now(),
	}
	if reseller.PlatformFeePercent.Valid {
		updates["platform_fee_percent"] = reseller.PlatformFeePercent.Float64
	} else {
		updates["platform_fee_percent"] = nil
	}
	if reseller.BrandDomain.Valid {
		updates["brand_domain"] = reseller.BrandDomain.String
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Reseller{}).
		Where("id = ?", reseller.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toResellerEntity(m *models.Reseller) *entities.Reseller {
	e := &entities.Reseller{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.PlatformFeePercent != nil {
		e.PlatformFeePercent = null.Float64From(*m.PlatformFeePercent)
	}
	if m.BrandDomain != nil {
		e.BrandDomain = null.StringFrom(*m.BrandDomain)
	}
	return e
}

type resellerAPIKeyRepo struct {
	db *gorm.DB
}

func NewResellerAPIKeyRepository(db *gorm.DB) domainrepos.ResellerAPIKeyRepository {
	return &resellerAPIKeyRepo{db: db}
}

func (r *resellerAPIKeyRepo) Create(ctx context.Context, key *entities.ResellerAPIKey) error {
	if key.ID == uuid.Nil {
		key.ID = utils.GenerateUUIDv7()
	}
	m := &models.ResellerAPIKey{
		ID:         key.ID,
		ResellerID: key.ResellerID,
		KeyPrefix:  key.KeyPrefix,
		KeyHash:    key.KeyHash,
		Active:     key.Active,
		CreatedAt:  time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *resellerAPIKeyRepo) GetByPrefix(ctx context.Context, prefix string) (*entities.ResellerAPIKey, error) {
	var m models.ResellerAPIKey
	err := GetDB(ctx, r.db).WithContext(ctx).Where("key_prefix = ?", prefix).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	e := &entities.ResellerAPIKey{
		ID:         m.ID,
		ResellerID: m.ResellerID,
		KeyPrefix:  m.KeyPrefix,
		KeyHash:    m.KeyHash,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
	}
	if m.LastUsedAt != nil {
		e.LastUsedAt = null.TimeFrom(*m.LastUsedAt)
	}
	return e, nil
}

func (r *resellerAPIKeyRepo) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.ResellerAPIKey{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now()).Error
}

func (r *resellerAPIKeyRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.ResellerAPIKey{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
