// Package hostname contains pure functions for hostname and subdomain
// validation. No I/O happens here.
package hostname

import (
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"

	er "github.com/funnelhub/domainstack/internal/errors"
)

const (
	maxHostnameLength = 253
	maxLabelLength    = 63
)

var (
	labelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	tldRegex   = regexp.MustCompile(`^[a-z]{2,}$`)
)

// reservedSubdomains cannot be claimed by users because the platform either
// uses them itself or routing them would be a phishing hazard.
var reservedSubdomains = map[string]struct{}{
	"www":     {},
	"mail":    {},
	"admin":   {},
	"api":     {},
	"ftp":     {},
	"smtp":    {},
	"pop":     {},
	"ns1":     {},
	"ns2":     {},
	"cpanel":  {},
	"webmail": {},
}

// Parsed is the result of splitting a hostname against public-suffix rules.
type Parsed struct {
	Subdomain  string // "shop" in shop.example.co.uk, empty for bare root domains
	Domain     string // "example"
	TLD        string // "co.uk"
	RootDomain string // "example.co.uk"
}

// ValidateHostname trims and lowercases the input and checks it is a
// well-formed DNS hostname of at least two labels.
func ValidateHostname(input string) (string, error) {
	host := strings.ToLower(strings.TrimSpace(input))
	if host == "" {
		return "", er.Validation("hostname is required")
	}
	if len(host) > maxHostnameLength {
		return "", er.Validation("hostname exceeds %d characters", maxHostnameLength)
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", er.Validation("hostname must contain at least two labels")
	}

	tld := labels[len(labels)-1]
	if !tldRegex.MatchString(tld) {
		return "", er.Validation("hostname has an invalid top-level domain")
	}

	for _, label := range labels {
		if label == "" {
			return "", er.Validation("hostname contains an empty label")
		}
		if len(label) > maxLabelLength {
			return "", er.Validation("hostname label exceeds %d characters", maxLabelLength)
		}
		if !labelRegex.MatchString(label) {
			return "", er.Validation("hostname label %q contains invalid characters", label)
		}
	}

	return host, nil
}

// ValidateSubdomain trims and lowercases a single subdomain label and
// rejects reserved platform names.
func ValidateSubdomain(input string) (string, error) {
	label := strings.ToLower(strings.TrimSpace(input))
	if label == "" {
		return "", er.Validation("subdomain is required")
	}
	if len(label) > maxLabelLength {
		return "", er.Validation("subdomain exceeds %d characters", maxLabelLength)
	}
	if !labelRegex.MatchString(label) {
		return "", er.Validation("subdomain contains invalid characters")
	}
	if _, reserved := reservedSubdomains[label]; reserved {
		return "", er.Conflict("subdomain %q is reserved", label)
	}
	return label, nil
}

// Parse splits a hostname into subdomain, domain, tld and root domain using
// public-suffix semantics, so multi-part TLDs like co.uk come out intact.
func Parse(host string) (*Parsed, error) {
	rootDomain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return nil, er.Validation("hostname has no registrable domain")
	}

	tld, _ := publicsuffix.PublicSuffix(host)
	domain := strings.TrimSuffix(rootDomain, "."+tld)

	subdomain := ""
	if host != rootDomain {
		subdomain = strings.TrimSuffix(host, "."+rootDomain)
	}

	return &Parsed{
		Subdomain:  subdomain,
		Domain:     domain,
		TLD:        tld,
		RootDomain: rootDomain,
	}, nil
}
