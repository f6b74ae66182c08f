package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/funnelhub/domainstack/internal/enum"
	"github.com/funnelhub/domainstack/internal/utils"
)

// OwnershipVerification is the DNS TXT record a customer must publish to
// prove control of a custom domain before traffic is routed to it.
type OwnershipVerification struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	RecordValue string `json:"value"`
	Purpose     string `json:"purpose"`
}

func (v OwnershipVerification) Value() (driver.Value, error) {
	return json.Marshal(v)
}

func (v *OwnershipVerification) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, v)
}

// DNSInstructions describes the record the customer adds to point their
// hostname at the platform edge.
type DNSInstructions struct {
	RecordType string `json:"recordType"`
	Name       string `json:"name"`
	Target     string `json:"target"`
}

func (i DNSInstructions) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *DNSInstructions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, i)
}

// SSLValidationRecord is a certificate authority DNS challenge record.
type SSLValidationRecord struct {
	TxtName  string `json:"txtName"`
	TxtValue string `json:"txtValue"`
}

type SSLValidationRecords []SSLValidationRecord

func (r SSLValidationRecords) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *SSLValidationRecords) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, r)
}

type Domain struct {
	ID        string            `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Hostname  string            `gorm:"column:hostname;type:varchar(255);uniqueIndex;not null" json:"hostname"`
	Type      enum.DomainType   `gorm:"column:type;type:varchar(50);not null" json:"type"`
	Status    enum.DomainStatus `gorm:"column:status;type:varchar(50);not null" json:"status"`
	SSLStatus enum.SSLStatus    `gorm:"column:ssl_status;type:varchar(50);not null" json:"sslStatus"`
	OwnerID   string            `gorm:"column:owner_id;type:varchar(50);index;not null" json:"ownerId"`
	// Provider linkage: custom domains carry the hostname id, subdomains the record id
	ProviderHostnameID *string `gorm:"column:provider_hostname_id;type:varchar(100)" json:"providerHostnameId"`
	ProviderZoneID     *string `gorm:"column:provider_zone_id;type:varchar(100)" json:"providerZoneId"`
	ProviderRecordID   *string `gorm:"column:provider_record_id;type:varchar(100)" json:"providerRecordId"`
	// Verification material handed to the customer
	VerificationToken     string                 `gorm:"column:verification_token;type:varchar(255)" json:"verificationToken"`
	OwnershipVerification *OwnershipVerification `gorm:"column:ownership_verification;type:jsonb" json:"ownershipVerification"`
	DNSInstructions       *DNSInstructions       `gorm:"column:dns_instructions;type:jsonb" json:"dnsInstructions"`
	SSLValidationRecords  SSLValidationRecords   `gorm:"column:ssl_validation_records;type:jsonb" json:"sslValidationRecords"`
	LastVerifiedAt        *time.Time             `gorm:"column:last_verified_at;type:timestamp" json:"lastVerifiedAt"`
	// Standard timestamps
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

func (Domain) TableName() string {
	return "domains"
}

func (d *Domain) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = utils.GenerateNanoIdWithPrefix("dom", 16)
	}
	return nil
}

// IsFullyActive reports whether both routing and TLS are live.
func (d *Domain) IsFullyActive() bool {
	return d.Status == enum.DomainStatusActive && d.SSLStatus == enum.SSLStatusActive
}
