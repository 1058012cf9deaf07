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

type businessRepo struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) domainrepos.BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, business *entities.Business) error {
	if business.ID == uuid.Nil {
		business.ID = utils.GenerateUUIDv7()
	}
	m := toBusinessModel(business)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	var m models.Business
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toBusinessEntity(&m), nil
}

func (r *businessRepo) GetBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	var m models.Business
	err := GetDB(ctx, r.db).WithContext(ctx).Where("slug = ?", slug).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toBusinessEntity(&m), nil
}

func (r *businessRepo) List(ctx context.Context, limit, offset int) ([]*entities.Business, int64, error) {
	var rows []models.Business
	var total int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Business{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Business, 0, len(rows))
	for i := range rows {
		items = append(items, toBusinessEntity(&rows[i]))
	}
	return items, total, nil
}

func (r *businessRepo) Update(ctx context.Context, business *entities.Business) error {
	updates := map[string]interface{}{
		"name":           business.Name,
		"currency":       business.Currency,
		"is_white_label": business.IsWhiteLabel,
		"reseller_id":    business.ResellerID,
		"updated_at":     time.Now(),
	}
	if business.FeeRatePercent.Valid {
		updates["fee_rate_percent"] = business.FeeRatePercent.Float64
	} else {
		updates["fee_rate_percent"] = nil
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Business{}).
		Where("id = ?", business.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *businessRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Business{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toBusinessModel(e *entities.Business) *models.Business {
	m := &models.Business{
		ID:           e.ID,
		OwnerUserID:  e.OwnerUserID,
		Name:         e.Name,
		Slug:         e.Slug,
		Currency:     e.Currency,
		IsWhiteLabel: e.IsWhiteLabel,
		ResellerID:   e.ResellerID,
		Status:       string(e.Status),
	}
	if e.FeeRatePercent.Valid {
		v := e.FeeRatePercent.Float64
		m.FeeRatePercent = &v
	}
	return m
}

func toBusinessEntity(m *models.Business) *entities.Business {
	e := &entities.Business{
		ID:           m.ID,
		OwnerUserID:  m.OwnerUserID,
		Name:         m.Name,
		Slug:         m.Slug,
		Currency:     m.Currency,
		IsWhiteLabel: m.IsWhiteLabel,
		ResellerID:   m.ResellerID,
		Status:       entities.BusinessStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.FeeRatePercent != nil {
		e.FeeRatePercent = null.Float64From(*m.FeeRatePercent)
	}
	return e
}
