package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	domainrepos "trimly.backend/internal/domain/repositories"
	"trimly.backend/internal/infrastructure/models"
	"trimly.backend/pkg/utils"
)

type staffRepo struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) domainrepos.StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *entities.StaffMember) error {
	if staff.ID == uuid.Nil {
		staff.ID = utils.GenerateUUIDv7()
	}
	m := &models.StaffMember{
		ID:          staff.ID,
		BusinessID:  staff.BusinessID,
		UserID:      staff.UserID,
		DisplayName: staff.DisplayName,
		Role:        string(staff.Role),
		Active:      staff.Active,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if staff.PayoutPolicy != nil {
		kind := string(staff.PayoutPolicy.Kind)
		value := staff.PayoutPolicy.Value
		m.PayoutPolicyKind = &kind
		m.PayoutPolicyValue = &value
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.StaffMember, error) {
	var m models.StaffMember
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toStaffEntity(&m), nil
}

func (r *staffRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.StaffMember, error) {
	var rows []models.StaffMember
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]*entities.StaffMember, 0, len(rows))
	for i := range rows {
		items = append(items, toStaffEntity(&rows[i]))
	}
	return items, nil
}

func (r *staffRepo) SetPayoutPolicy(ctx context.Context, id uuid.UUID, policy *entities.PayoutPolicy) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if policy != nil {
		updates["payout_policy_kind"] = string(policy.Kind)
		updates["payout_policy_value"] = policy.Value
	} else {
		updates["payout_policy_kind"] = nil
		updates["payout_policy_value"] = nil
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.StaffMember{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *staffRepo) Update(ctx context.Context, staff *entities.StaffMember) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.StaffMember{}).
		Where("id = ?", staff.ID).
		Updates(map[string]interface{}{
			"display_name": staff.DisplayName,
			"role":         string(staff.Role),
			"active":       staff.Active,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *staffRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.StaffMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toStaffEntity(m *models.StaffMember) *entities.StaffMember {
	e := &entities.StaffMember{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Role:        entities.StaffRole(m.Role),
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.PayoutPolicyKind != nil && m.PayoutPolicyValue != nil {
		e.PayoutPolicy = &entities.PayoutPolicy{
			Kind:  entities.PayoutPolicyKind(*m.PayoutPolicyKind),
			Value: *m.PayoutPolicyValue,
		}
	}
	return e
}

type serviceRepo struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) domainrepos.ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, service *entities.Service) error {
	if service.ID == uuid.Nil {
		service.ID = utils.GenerateUUIDv7()
	}
	m := &models.Service{
		ID:              service.ID,
		BusinessID:      service.BusinessID,
		Name:            service.Name,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		Active:          service.Active,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *serviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	var m models.Service
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toServiceEntity(&m), nil
}

func (r *serviceRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Service, error) {
	var rows []models.Service
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Service, 0, len(rows))
	for i := range rows {
		items = append(items, toServiceEntity(&rows[i]))
	}
	return items, nil
}

func (r *serviceRepo) Update(ctx context.Context, service *entities.Service) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Service{}).
		Where("id = ?", service.ID).
		Updates(map[string]interface{}{
			"name":             service.Name,
			"duration_minutes": service.DurationMinutes,
			"price":            service.Price,
			"active":           service.Active,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toServiceEntity(m *models.Service) *entities.Service {
	return &entities.Service{
		ID:              m.ID,
		BusinessID:      m.BusinessID,
		Name:            m.Name,
		DurationMinutes: m.DurationMinutes,
		Price:           m.Price,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
