package partner

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
	SupplierStatusBlocked  SupplierStatus = "blocked" // Blocked due to quality/payment issues
)

// SupplierType represents the type of supplier
type SupplierType string

const (
	SupplierTypeFarmer      SupplierType = "farmer"      // Direct farm/estate source
	SupplierTypeWholesaler  SupplierType = "wholesaler"  // Mandi wholesaler
	SupplierTypeProcessor   SupplierType = "processor"   // Grinding/packaging unit
	SupplierTypeDistributor SupplierType = "distributor" // Branded goods distributor
)

// Supplier represents a supplier in the partner context
// It is the aggregate root for supplier-related operations
type Supplier struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	ShortName   string          `gorm:"type:varchar(100)"` // Abbreviated name
	Type        SupplierType    `gorm:"type:varchar(20);not null;default:'wholesaler'"`
	Status      SupplierStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName string          `gorm:"type:varchar(100)"` // Primary contact person
	Phone       string          `gorm:"type:varchar(50);index"`
	Email       string          `gorm:"type:varchar(200);index"`
	Address     string          `gorm:"type:text"` // Full address
	City        string          `gorm:"type:varchar(100)"`
	State       string          `gorm:"type:varchar(100)"`
	PostalCode  string          `gorm:"type:varchar(20)"`
	GSTIN       string          `gorm:"type:varchar(15);index"` // GST registration number
	CreditDays  int             `gorm:"not null;default:0"`     // Payment terms: days until payment due
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Current accounts payable balance
	Notes       string          `gorm:"type:text"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(code, name string, supplierType SupplierType) (*Supplier, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if err := validateSupplierType(supplierType); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Type:              supplierType,
		Status:            SupplierStatusActive,
		CreditDays:        0,
		CreditLimit:       decimal.Zero,
		Balance:           decimal.Zero,
	}, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, shortName string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if shortName != "" && len(shortName) > 100 {
		return shared.NewDomainError("INVALID_SHORT_NAME", "Short name cannot exceed 100 characters")
	}

	s.Name = name
	s.ShortName = shortName
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email string) error {
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

	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the supplier's address information
func (s *Supplier) SetAddress(address, city, state, postalCode string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if state != "" && len(state) > 100 {
		return shared.NewDomainError("INVALID_STATE", "State cannot exceed 100 characters")
	}
	if postalCode != "" && len(postalCode) > 20 {
		return shared.NewDomainError("INVALID_POSTAL_CODE", "Postal code cannot exceed 20 characters")
	}

	s.Address = address
	s.City = city
	s.State = state
	s.PostalCode = postalCode
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetGSTIN sets the supplier's GST registration number
func (s *Supplier) SetGSTIN(gstin string) error {
	if gstin != "" {
		if err := validateGSTIN(gstin); err != nil {
			return err
		}
	}

	s.GSTIN = strings.ToUpper(gstin)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetPaymentTerms sets the supplier's payment terms (credit days and limit)
func (s *Supplier) SetPaymentTerms(creditDays int, creditLimit decimal.Decimal) error {
	if creditDays < 0 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Credit days cannot be negative")
	}
	if creditDays > 365 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Credit days cannot exceed 365")
	}
	if creditLimit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	s.CreditDays = creditDays
	s.CreditLimit = creditLimit
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// AddBalance adds to the supplier's accounts payable balance (when goods are received)
func (s *Supplier) AddBalance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	s.Balance = s.Balance.Add(amount)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// DeductBalance deducts from the supplier's accounts payable balance (when we pay)
func (s *Supplier) DeductBalance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if s.Balance.LessThan(amount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount exceeds current balance")
	}

	s.Balance = s.Balance.Sub(amount)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetNotes sets the supplier's notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Block blocks the supplier (e.g., due to quality or payment issues)
func (s *Supplier) Block() error {
	if s.Status == SupplierStatusBlocked {
		return shared.NewDomainError("ALREADY_BLOCKED", "Supplier is already blocked")
	}

	s.Status = SupplierStatusBlocked
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// IsBlocked returns true if the supplier is blocked
func (s *Supplier) IsBlocked() bool {
	return s.Status == SupplierStatusBlocked
}

// HasCreditTerms returns true if supplier has credit terms configured
func (s *Supplier) HasCreditTerms() bool {
	return s.CreditDays > 0 || s.CreditLimit.GreaterThan(decimal.Zero)
}

// GetAvailableCredit returns the available credit for new purchases
func (s *Supplier) GetAvailableCredit() decimal.Decimal {
	if s.CreditLimit.IsZero() {
		return decimal.Zero
	}
	available := s.CreditLimit.Sub(s.Balance)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

func validateSupplierType(t SupplierType) error {
	switch t {
	case SupplierTypeFarmer, SupplierTypeWholesaler, SupplierTypeProcessor, SupplierTypeDistributor:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid supplier type")
	}
}
