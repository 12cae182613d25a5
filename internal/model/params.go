package model

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// emailPattern is a deliberately loose shape check. Deliverability is
// out of scope; this only catches obvious typos before a scan starts.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SearchParams describes one scan request.
type SearchParams struct {
	Industry     string `json:"industry" yaml:"industry" mapstructure:"industry"`
	Location     string `json:"location" yaml:"location" mapstructure:"location"`
	Service      string `json:"service" yaml:"service" mapstructure:"service"`
	ContactEmail string `json:"contact_email" yaml:"contact_email" mapstructure:"contact_email"`
}

// Validate checks that all four fields are present and the contact
// email is plausibly shaped.
func (p SearchParams) Validate() error {
	if strings.TrimSpace(p.Industry) == "" {
		return eris.New("model: industry is required")
	}
	if strings.TrimSpace(p.Location) == "" {
		return eris.New("model: location is required")
	}
	if strings.TrimSpace(p.Service) == "" {
		return eris.New("model: service is required")
	}
	if strings.TrimSpace(p.ContactEmail) == "" {
		return eris.New("model: contact email is required")
	}
	if !emailPattern.MatchString(p.ContactEmail) {
		return eris.Errorf("model: contact email %q is not a valid address", p.ContactEmail)
	}
	return nil
}
