package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Query string `json:"query" validate:"required"`
	Limit int    `json:"limit" validate:"gte=0,lte=100"`
	Mode  string `json:"mode" validate:"omitempty,oneof=similarity structured"`
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, Validate(sampleRequest{Query: "telefon", Limit: 10, Mode: "structured"}))
	assert.NoError(t, Validate(sampleRequest{Query: "telefon"}))
}

func TestValidateFieldErrors(t *testing.T) {
	err := Validate(sampleRequest{Limit: 500, Mode: "fuzzy"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "Query")
	assert.Contains(t, fields, "Limit")
	assert.Contains(t, fields, "Mode")
	assert.Equal(t, "is required", fields["Query"])
	assert.Contains(t, fields["Mode"], "must be one of")
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"query":"telefon","limit":5}`))
	var dst sampleRequest
	require.NoError(t, DecodeAndValidate(req, &dst))
	assert.Equal(t, "telefon", dst.Query)
	assert.Equal(t, 5, dst.Limit)
}

func TestDecodeAndValidateBadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	var dst sampleRequest
	err := DecodeAndValidate(req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
