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

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) domainrepos.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = utils.GenerateUUIDv7()
	}
	m := &models.Payment{
		ID:              payment.ID,
		BookingID:       payment.BookingID,
		Amount:          payment.Amount,
		PlatformFee:     payment.PlatformFee,
		BusinessAmount:  payment.BusinessAmount,
		FeeRateSnapshot: payment.FeeRateSnapshot,
		Status:          string(payment.Status),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if payment.ProcessorChargeRef.Valid {
		v := payment.ProcessorChargeRef.String
		m.ProcessorChargeRef = &v
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&m), nil
}

func (r *paymentRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entities.Payment, error) {
	var rows []models.Payment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		items = append(items, toPaymentEntity(&rows[i]))
	}
	return items, nil
}

func (r *paymentRepo) CompleteAllForBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payment{}).
		Where("booking_id = ? AND status = ?", bookingID, string(entities.PaymentStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(entities.PaymentStatusCompleted),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *paymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payment{}).
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

func toPaymentEntity(m *models.Payment) *entities.Payment {
	e := &entities.Payment{
		ID:              m.ID,
		BookingID:       m.BookingID,
		Amount:          m.Amount,
		PlatformFee:     m.PlatformFee,
		BusinessAmount:  m.BusinessAmount,
		FeeRateSnapshot: m.FeeRateSnapshot,
		Status:          entities.PaymentStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.ProcessorChargeRef != nil {
		e.ProcessorChargeRef = null.StringFrom(*m.ProcessorChargeRef)
	}
	return e
}
