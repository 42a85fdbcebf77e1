// Package model defines the data contracts shared across the audit pipeline.
package model

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Field length caps applied to every free-text input before any downstream work.
const (
	MaxBusinessNameLen = 100
	MaxCityLen         = 100
	MaxWebsiteURLLen   = 300
	MaxContextLen      = 500
)

// BusinessTypes is the enumerated set of accepted business types.
var BusinessTypes = []string{
	"Restaurant / Cafe",
	"Retail Store",
	"Professional Services",
	"Health & Wellness",
	"Home Services",
	"Beauty / Salon",
	"Automotive",
	"Real Estate",
	"Fitness / Gym",
	"Other",
}

// AuditRequest is the validated user input for one audit.
type AuditRequest struct {
	BusinessName      string `json:"businessName"`
	City              string `json:"city"`
	BusinessType      string `json:"businessType"`
	WebsiteURL        string `json:"websiteUrl,omitempty"`
	AdditionalContext string `json:"additionalContext,omitempty"`
}

// Validate trims and checks every field. It returns a caller-safe error
// message on the first violation; nothing downstream runs until it passes.
func (r *AuditRequest) Validate() error {
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.City = strings.TrimSpace(r.City)
	r.BusinessType = strings.TrimSpace(r.BusinessType)
	r.WebsiteURL = strings.TrimSpace(r.WebsiteURL)
	r.AdditionalContext = strings.TrimSpace(r.AdditionalContext)

	switch {
	case r.BusinessName == "":
		return eris.New("businessName is required")
	case len(r.BusinessName) > MaxBusinessNameLen:
		return eris.New("businessName is too long")
	case r.City == "":
		return eris.New("city is required")
	case len(r.City) > MaxCityLen:
		return eris.New("city is too long")
	case r.BusinessType == "":
		return eris.New("businessType is required")
	}

	if !validBusinessType(r.BusinessType) {
		return eris.New("businessType is not a recognized business type")
	}

	if r.WebsiteURL != "" {
		if len(r.WebsiteURL) > MaxWebsiteURLLen {
			return eris.New("websiteUrl is too long")
		}
		u, err := url.Parse(r.WebsiteURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return eris.New("websiteUrl is not a valid URL")
		}
	}

	if len(r.AdditionalContext) > MaxContextLen {
		return eris.New("additionalContext is too long")
	}

	return nil
}

func validBusinessType(t string) bool {
	for _, bt := range BusinessTypes {
		if bt == t {
			return true
		}
	}
	return false
}
