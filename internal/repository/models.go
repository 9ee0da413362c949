package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	Phone        *string   `gorm:"column:phone;size:32"`
	Role         string    `gorm:"column:role;size:16;not null;default:user"`
	Status       string    `gorm:"column:status;size:16;not null;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type listingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;size:128;not null;uniqueIndex;index:idx_services_category_name,priority:2"`
	Category    string    `gorm:"column:category;size:64;not null;index:idx_services_category_name,priority:1"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (listingModel) TableName() string { return "services" }

type providerModel struct {
	ID              int64           `gorm:"column:id;primaryKey"`
	Email           string          `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash    string          `gorm:"column:password_hash;not null"`
	BusinessName    string          `gorm:"column:business_name;not null"`
	OwnerName       string          `gorm:"column:owner_name;not null"`
	Phone           string          `gorm:"column:phone;size:32;not null"`
	ServiceID       int64           `gorm:"column:service_id;not null"`
	ServiceName     string          `gorm:"column:service_name;size:128;not null;index:idx_providers_bookable,priority:1"`
	Location        string          `gorm:"column:location;not null"`
	HourlyRate      decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2);not null;check:chk_providers_rate,hourly_rate > 0"`
	ExperienceYears int             `gorm:"column:experience_years;not null"`
	Description     *string         `gorm:"column:description"`
	IdentityNumber  *string         `gorm:"column:identity_number;size:64"`
	TaxNumber       *string         `gorm:"column:tax_number;size:64"`
	KycStatus       string          `gorm:"column:kyc_status;size:16;not null;default:pending;check:chk_kyc_consistent,kyc_verified = (kyc_status = 'verified')"`
	KycVerified     bool            `gorm:"column:kyc_verified;not null;index:idx_providers_bookable,priority:2"`
	Status          string          `gorm:"column:status;size:16;not null;default:active;index:idx_providers_bookable,priority:3"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`

	Service *listingModel `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT"`
}

func (providerModel) TableName() string { return "service_providers" }

type kycDocumentModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ProviderID int64     `gorm:"column:provider_id;not null;index"`
	Reference  string    `gorm:"column:reference;size:512;not null"`
	FileName   string    `gorm:"column:file_name;not null"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at"`

	Provider *providerModel `gorm:"foreignKey:ProviderID;constraint:OnDelete:RESTRICT"`
}

func (kycDocumentModel) TableName() string { return "kyc_documents" }

type bookingModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	UserID        int64           `gorm:"column:user_id;not null;index"`
	ProviderID    int64           `gorm:"column:provider_id;not null;index"`
	ServiceName   string          `gorm:"column:service_name;size:128;not null"`
	BookingDate   string          `gorm:"column:booking_date;size:10;not null"`
	BookingTime   string          `gorm:"column:booking_time;size:5;not null"`
	DurationHours int             `gorm:"column:duration_hours;not null;check:chk_bookings_duration,duration_hours > 0"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status        string          `gorm:"column:status;size:16;not null;default:pending"`
	UserAddress   string          `gorm:"column:user_address;not null"`
	Instructions  *string         `gorm:"column:special_instructions"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`

	Customer *userModel     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Provider *providerModel `gorm:"foreignKey:ProviderID;constraint:OnDelete:RESTRICT"`
}

func (bookingModel) TableName() string { return "bookings" }

type paymentModel struct {
	ID               string          `gorm:"column:id;primaryKey;size:36"`
	BookingID        int64           `gorm:"column:booking_id;not null;index"`
	UserID           int64           `gorm:"column:user_id;not null"`
	ProviderID       int64           `gorm:"column:provider_id;not null"`
	Amount           decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	Status           string          `gorm:"column:status;size:16;not null;default:pending"`
	Method           *string         `gorm:"column:payment_method;size:32"`
	GatewayOrderID   *string         `gorm:"column:gateway_order_id;size:64"`
	GatewayPaymentID *string         `gorm:"column:gateway_payment_id;size:64"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`

	Booking *bookingModel `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT"`
}

func (paymentModel) TableName() string { return "payments" }

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;not null;uniqueIndex"`
	UserID     int64     `gorm:"column:user_id;not null"`
	ProviderID int64     `gorm:"column:provider_id;not null;index"`
	Rating     int       `gorm:"column:rating;not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment    *string   `gorm:"column:comment"`
	CreatedAt  time.Time `gorm:"column:created_at"`

	Booking *bookingModel `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT"`
}

func (reviewModel) TableName() string { return "reviews" }

type messageModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;not null;index"`
	SenderType string    `gorm:"column:sender_type;size:16;not null"`
	SenderID   int64     `gorm:"column:sender_id;not null"`
	Text       string    `gorm:"column:message_text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`

	Booking *bookingModel `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT"`
}

func (messageModel) TableName() string { return "messages" }

// AutoMigrate creates the schema on stores that are not managed by the SQL
// migrations (SQLite in development and tests, MySQL). The association fields
// above exist only so the foreign keys are created; they are never loaded.
// SQLite enforces them only with PRAGMA foreign_keys=ON.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&listingModel{},
		&providerModel{},
		&kycDocumentModel{},
		&bookingModel{},
		&paymentModel{},
		&reviewModel{},
		&messageModel{},
	)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
