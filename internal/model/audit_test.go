package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() AuditRequest {
	return AuditRequest{
		BusinessName: "Joe's Pizza",
		City:         "Austin, TX",
		BusinessType: "Restaurant / Cafe",
	}
}

func TestAuditRequest_Validate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	t.Run("trims whitespace", func(t *testing.T) {
		req := validRequest()
		req.BusinessName = "  Joe's Pizza  "
		require.NoError(t, req.Validate())
		assert.Equal(t, "Joe's Pizza", req.BusinessName)
	})

	t.Run("missing name", func(t *testing.T) {
		req := validRequest()
		req.BusinessName = "   "
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "businessName")
	})

	t.Run("oversized name", func(t *testing.T) {
		req := validRequest()
		req.BusinessName = strings.Repeat("a", MaxBusinessNameLen+1)
		assert.Error(t, req.Validate())
	})

	t.Run("missing city", func(t *testing.T) {
		req := validRequest()
		req.City = ""
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("unknown business type", func(t *testing.T) {
		req := validRequest()
		req.BusinessType = "Spaceport"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "businessType")
	})

	t.Run("invalid website url", func(t *testing.T) {
		req := validRequest()
		req.WebsiteURL = "not-a-url"
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "websiteUrl")
	})

	t.Run("valid website url", func(t *testing.T) {
		req := validRequest()
		req.WebsiteURL = "https://joespizza.com"
		assert.NoError(t, req.Validate())
	})

	t.Run("oversized context", func(t *testing.T) {
		req := validRequest()
		req.AdditionalContext = strings.Repeat("x", MaxContextLen+1)
		assert.Error(t, req.Validate())
	})
}
