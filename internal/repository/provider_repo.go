package repository

import (
	"context"

	"servicehub/internal/domain"

	"gorm.io/gorm"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func toDomainProvider(m providerModel) *domain.Provider {
	return &domain.Provider{
		ID:              m.ID,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		BusinessName:    m.BusinessName,
		OwnerName:       m.OwnerName,
		Phone:           m.Phone,
		ServiceID:       m.ServiceID,
		ServiceName:     m.ServiceName,
		Location:        m.Location,
		HourlyRate:      m.HourlyRate,
		ExperienceYears: m.ExperienceYears,
		Description:     deref(m.Description),
		IdentityNumber:  deref(m.IdentityNumber),
		TaxNumber:       deref(m.TaxNumber),
		KycStatus:       domain.KycStatus(m.KycStatus),
		KycVerified:     m.KycVerified,
		Status:          domain.AccountStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toProviderModel(p *domain.Provider) providerModel {
	return providerModel{
		ID:              p.ID,
		Email:           normalizeEmail(p.Email),
		PasswordHash:    p.PasswordHash,
		BusinessName:    p.BusinessName,
		OwnerName:       p.OwnerName,
		Phone:           p.Phone,
		ServiceID:       p.ServiceID,
		ServiceName:     p.ServiceName,
		Location:        p.Location,
		HourlyRate:      p.HourlyRate,
		ExperienceYears: p.ExperienceYears,
		Description:     optional(p.Description),
		IdentityNumber:  optional(p.IdentityNumber),
		TaxNumber:       optional(p.TaxNumber),
		KycStatus:       string(p.KycStatus),
		KycVerified:     p.KycVerified,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.Provider) error {
	m := toProviderModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translateWrite(err)
	}
	*p = *toDomainProvider(m)
	return nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	var m providerModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "provider")
	}
	return toDomainProvider(m), nil
}

func (r *ProviderRepository) GetByEmail(ctx context.Context, email string) (*domain.Provider, error) {
	var m providerModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m).Error
	if err != nil {
		return nil, notFound(err, "provider")
	}
	return toDomainProvider(m), nil
}

// SetKyc writes the KYC sub-state and the verified flag in one statement.
func (r *ProviderRepository) SetKyc(ctx context.Context, id int64, status domain.KycStatus, verified bool) (*domain.Provider, error) {
	tx := r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"kyc_status":   string(status),
			"kyc_verified": verified,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, notFound(gorm.ErrRecordNotFound, "provider")
	}
	return r.GetByID(ctx, id)
}

func (r *ProviderRepository) SetStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Provider, error) {
	tx := r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, notFound(gorm.ErrRecordNotFound, "provider")
	}
	return r.GetByID(ctx, id)
}

// ListBookable returns verified, active providers, optionally restricted to
// one bound service. Ordering is left to the caller.
func (r *ProviderRepository) ListBookable(ctx context.Context, serviceName string) ([]domain.Provider, error) {
	q := r.db.WithContext(ctx).
		Where("kyc_verified = ? AND status = ?", true, string(domain.AccountActive))
	if serviceName != "" {
		q = q.Where("service_name = ?", serviceName)
	}

	var rows []providerModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProviders(rows), nil
}

func (r *ProviderRepository) ListAll(ctx context.Context) ([]domain.Provider, error) {
	var rows []providerModel
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProviders(rows), nil
}

func (r *ProviderRepository) Recent(ctx context.Context, limit int) ([]domain.Provider, error) {
	var rows []providerModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainProviders(rows), nil
}

func (r *ProviderRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&providerModel{}).Count(&cnt).Error
	return cnt, err
}

func (r *ProviderRepository) CountByKyc(ctx context.Context, status domain.KycStatus) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("kyc_status = ?", string(status)).
		Count(&cnt).Error
	return cnt, err
}

func (r *ProviderRepository) AddKycDocument(ctx context.Context, d *domain.KycDocument) error {
	m := kycDocumentModel{
		ProviderID: d.ProviderID,
		Reference:  d.Reference,
		FileName:   d.FileName,
		SizeBytes:  d.SizeBytes,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	d.ID = m.ID
	d.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProviderRepository) ListKycDocuments(ctx context.Context, providerID int64) ([]domain.KycDocument, error) {
	var rows []kycDocumentModel
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.KycDocument, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.KycDocument{
			ID:         m.ID,
			ProviderID: m.ProviderID,
			Reference:  m.Reference,
			FileName:   m.FileName,
			SizeBytes:  m.SizeBytes,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out, nil
}

func toDomainProviders(rows []providerModel) []domain.Provider {
	out := make([]domain.Provider, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProvider(m))
	}
	return out
}
