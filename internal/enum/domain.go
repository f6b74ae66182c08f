package enum

type DomainType string

const (
	DomainTypeCustom    DomainType = "custom_domain"
	DomainTypeSubdomain DomainType = "subdomain"
)

func (t DomainType) String() string {
	return string(t)
}

type DomainStatus string

const (
	DomainStatusPending  DomainStatus = "pending"
	DomainStatusVerified DomainStatus = "verified"
	DomainStatusActive   DomainStatus = "active"
)

func (t DomainStatus) String() string {
	return string(t)
}

type SSLStatus string

const (
	SSLStatusPending SSLStatus = "pending"
	SSLStatusActive  SSLStatus = "active"
	SSLStatusError   SSLStatus = "error"
)

func (t SSLStatus) String() string {
	return string(t)
}

type FunnelStatus string

const (
	FunnelStatusDraft    FunnelStatus = "draft"
	FunnelStatusLive     FunnelStatus = "live"
	FunnelStatusArchived FunnelStatus = "archived"
)

func (t FunnelStatus) String() string {
	return string(t)
}
