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

type payoutRepo struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) domainrepos.PayoutRepository {
	return &payoutRepo{db: db}
}

func (r *payoutRepo) Create(ctx context.Context, payout *entities.Payout) error {
	if payout.ID == uuid.Nil {
		payout.ID = utils.GenerateUUIDv7()
	}
	m := &models.Payout{
		ID:          payout.ID,
		BusinessID:  payout.BusinessID,
		Amount:      payout.Amount,
		Status:      string(payout.Status),
		Description: payout.Description,
		PeriodStart: payout.PeriodStart,
		PeriodEnd:   payout.PeriodEnd,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	payout.CreatedAt = m.CreatedAt
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *payoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payout, error) {
	var m models.Payout
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("LineItems").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPayoutEntity(&m), nil
}

func (r *payoutRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Payout, int64, error) {
	var rows []models.Payout
	var total int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payout{}).
		Where("business_id = ?", businessID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Payout, 0, len(rows))
	for i := range rows {
		items = append(items, toPayoutEntity(&rows[i]))
	}
	return items, total, nil
}

// Confirm only moves payouts out of pending; repeated processor callbacks
// for the same payout are no-ops.
func (r *payoutRepo) Confirm(ctx context.Context, id uuid.UUID, status entities.PayoutStatus, transferRef string) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if transferRef != "" {
		updates["external_transfer_ref"] = transferRef
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payout{}).
		Where("id = ? AND status = ?", id, string(entities.PayoutStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the payout does not exist or it is already confirmed.
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payout{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
	}
	return nil
}

func (r *payoutRepo) CreateLineItems(ctx context.Context, items []*entities.PayoutLineItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.PayoutLineItem, 0, len(items))
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = utils.GenerateUUIDv7()
		}
		rows = append(rows, models.PayoutLineItem{
			ID:        item.ID,
			PayoutID:  item.PayoutID,
			BookingID: item.BookingID,
			StaffID:   item.StaffID,
			Amount:    item.Amount,
		})
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(&rows).Error
}

func (r *payoutRepo) ListLineItems(ctx context.Context, payoutID uuid.UUID) ([]*entities.PayoutLineItem, error) {
	var rows []models.PayoutLineItem
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("payout_id = ?", payoutID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]*entities.PayoutLineItem, 0, len(rows))
	for i := range rows {
		items = append(items, toPayoutLineItemEntity(&rows[i]))
	}
	return items, nil
}

func toPayoutEntity(m *models.Payout) *entities.Payout {
	e := &entities.Payout{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		Amount:      m.Amount,
		Status:      entities.PayoutStatus(m.Status),
		Description: m.Description,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ExternalTransferRef != nil {
		e.ExternalTransferRef = null.StringFrom(*m.ExternalTransferRef)
	}
	for i := range m.LineItems {
		e.LineItems = append(e.LineItems, toPayoutLineItemEntity(&m.LineItems[i]))
	}
	return e
}

func toPayoutLineItemEntity(m *models.PayoutLineItem) *entities.PayoutLineItem {
	return &entities.PayoutLineItem{
		ID:        m.ID,
		PayoutID:  m.PayoutID,
		BookingID: m.BookingID,
		StaffID:   m.StaffID,
		Amount:    m.Amount,
	}
}
