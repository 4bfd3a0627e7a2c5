package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// CatererStatus represents the status of a caterer account
type CatererStatus string

const (
	CatererStatusActive    CatererStatus = "active"
	CatererStatusInactive  CatererStatus = "inactive"
	CatererStatusSuspended CatererStatus = "suspended" // Suspended due to unpaid bills
)

// Caterer represents a catering business that buys on credit.
// It is the aggregate root for caterer-related operations.
type Caterer struct {
	shared.BaseAggregateRoot
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Status          CatererStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName     string          `gorm:"type:varchar(100)"`
	Phone           string          `gorm:"type:varchar(50);index"`
	Email           string          `gorm:"type:varchar(200);index"`
	DeliveryAddress string          `gorm:"type:text"`
	City            string          `gorm:"type:varchar(100)"`
	GSTIN           string          `gorm:"type:varchar(15);index"`
	CreditDays      int             `gorm:"not null;default:7"`                    // Default bill due window
	Balance         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Outstanding receivable
	Notes           string          `gorm:"type:text"`
	SortOrder       int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Caterer) TableName() string {
	return "caterers"
}

// NewCaterer creates a new caterer account with required fields
func NewCaterer(code, name string) (*Caterer, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Caterer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            CatererStatusActive,
		CreditDays:        7,
		Balance:           decimal.Zero,
	}, nil
}

// Update updates the caterer's basic information
func (c *Caterer) Update(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the caterer's contact information
func (c *Caterer) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetDeliveryAddress sets the caterer's delivery address
func (c *Caterer) SetDeliveryAddress(address, city string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}

	c.DeliveryAddress = address
	c.City = city
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetGSTIN sets the caterer's GST registration number
func (c *Caterer) SetGSTIN(gstin string) error {
	if gstin != "" {
		if err := validateGSTIN(gstin); err != nil {
			return err
		}
	}

	c.GSTIN = strings.ToUpper(gstin)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCreditDays sets the default due window for new bills
func (c *Caterer) SetCreditDays(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Credit days cannot be negative")
	}
	if days > 365 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Credit days cannot exceed 365")
	}

	c.CreditDays = days
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// AddBalance increases the outstanding receivable (when a bill is raised)
func (c *Caterer) AddBalance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	c.Balance = c.Balance.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// DeductBalance decreases the outstanding receivable (when payment arrives)
func (c *Caterer) DeductBalance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if c.Balance.LessThan(amount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount exceeds outstanding balance")
	}

	c.Balance = c.Balance.Sub(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the caterer's notes
func (c *Caterer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the caterer account
func (c *Caterer) Activate() error {
	if c.Status == CatererStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Caterer is already active")
	}

	c.Status = CatererStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the caterer account
func (c *Caterer) Deactivate() error {
	if c.Status == CatererStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Caterer is already inactive")
	}

	c.Status = CatererStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Suspend suspends the caterer account over unpaid bills
func (c *Caterer) Suspend() error {
	if c.Status == CatererStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Caterer is already suspended")
	}

	c.Status = CatererStatusSuspended
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the caterer account is active
func (c *Caterer) IsActive() bool {
	return c.Status == CatererStatusActive
}

// HasBalance returns true if the caterer owes money
func (c *Caterer) HasBalance() bool {
	return c.Balance.GreaterThan(decimal.Zero)
}

// Validation functions shared by the partner aggregates

var (
	phoneRegex = regexp.MustCompile(`^[+]?[0-9 ()-]{6,20}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	gstinRegex = regexp.MustCompile(`^[0-9]{2}[A-Z0-9]{10}[0-9A-Z]{3}$`)
)

func validatePartnerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validatePartnerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateGSTIN(gstin string) error {
	if !gstinRegex.MatchString(strings.ToUpper(gstin)) {
		return shared.NewDomainError("INVALID_GSTIN", "Invalid GSTIN format")
	}
	return nil
}
