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

type bookingRepo struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainrepos.BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *entities.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = utils.GenerateUUIDv7()
	}
	m := toBookingModel(booking)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	booking.CreatedAt = now
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	err := applyLock(ctx, GetDB(ctx, r.db).WithContext(ctx)).
		Preload("Payments").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toBookingEntity(&m), nil
}

func (r *bookingRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*entities.Booking, int64, error) {
	var rows []models.Booking
	var total int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Booking{}).
		Where("business_id = ?", businessID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Order("start_time DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		items = append(items, toBookingEntity(&rows[i]))
	}
	return items, total, nil
}

func (r *bookingRepo) ListByStatuses(ctx context.Context, businessID uuid.UUID, statuses []entities.BookingStatus) ([]*entities.Booking, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var rows []models.Booking
	err := applyLock(ctx, GetDB(ctx, r.db).WithContext(ctx)).
		Preload("Payments").
		Where("business_id = ? AND status IN ?", businessID, values).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		items = append(items, toBookingEntity(&rows[i]))
	}
	return items, nil
}

func (r *bookingRepo) ListSettleable(ctx context.Context, cutoff time.Time, limit int) ([]*entities.Booking, error) {
	var rows []models.Booking
	query := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Payments").
		Where("status IN ? AND end_time <= ?",
			[]string{string(entities.BookingStatusConfirmed), string(entities.BookingStatusInProgress)},
			cutoff).
		Order("end_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		items = append(items, toBookingEntity(&rows[i]))
	}
	return items, nil
}

// HasConflict runs the half-open interval overlap test against every
// non-cancelled booking of the staff member. The rows are selected rather
// than counted: postgres rejects FOR UPDATE on aggregate queries, and the
// lock has to land on the conflicting row itself.
func (r *bookingRepo) HasConflict(ctx context.Context, staffID uuid.UUID, start, end time.Time) (bool, error) {
	var ids []uuid.UUID
	err := applyLock(ctx, GetDB(ctx, r.db).WithContext(ctx)).Model(&models.Booking{}).
		Where("staff_id = ? AND status != ? AND start_time < ? AND end_time > ?",
			staffID, string(entities.BookingStatusCancelled), end, start).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *bookingRepo) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt, fundsAvailableAt time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             string(entities.BookingStatusCompleted),
			"completed_at":       completedAt,
			"funds_available_at": fundsAvailableAt,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Booking{}).
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

func (r *bookingRepo) ClearStaff(ctx context.Context, staffID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.Booking{}).
		Where("staff_id = ?", staffID).
		Updates(map[string]interface{}{"staff_id": nil, "updated_at": time.Now()}).Error
}

func toBookingModel(e *entities.Booking) *models.Booking {
	m := &models.Booking{
		ID:           e.ID,
		BusinessID:   e.BusinessID,
		ServiceID:    e.ServiceID,
		StaffID:      e.StaffID,
		CustomerName: e.CustomerName,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Status:       string(e.Status),
		TotalAmount:  e.TotalAmount,
	}
	if e.CustomerEmail.Valid {
		v := e.CustomerEmail.String
		m.CustomerEmail = &v
	}
	return m
}

func toBookingEntity(m *models.Booking) *entities.Booking {
	e := &entities.Booking{
		ID:           m.ID,
		BusinessID:   m.BusinessID,
		ServiceID:    m.ServiceID,
		StaffID:      m.StaffID,
		CustomerName: m.CustomerName,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Status:       entities.BookingStatus(m.Status),
		TotalAmount:  m.TotalAmount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.CustomerEmail != nil {
		e.CustomerEmail = null.StringFrom(*m.CustomerEmail)
	}
	if m.CompletedAt != nil {
		e.CompletedAt = null.TimeFrom(*m.CompletedAt)
	}
	if m.FundsAvailableAt != nil {
		e.FundsAvailableAt = null.TimeFrom(*m.FundsAvailableAt)
	}
	for i := range m.Payments {
		e.Payments = append(e.Payments, toPaymentEntity(&m.Payments[i]))
	}
	return e
}
