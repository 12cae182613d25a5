package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLeadsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const leadsEnvelope = `{"leads": [
	{"id": "l1", "company_name": "Apex Dental", "score": 79},
	{"id": "l2", "company_name": "Bright Smiles", "score": 55}
]}`

func TestLoadLeadByID(t *testing.T) {
	path := writeLeadsFile(t, leadsEnvelope)

	lead, err := loadLead(path, "l2", "")
	require.NoError(t, err)
	assert.Equal(t, "Bright Smiles", lead.CompanyName)
}

func TestLoadLeadByCompanyCaseInsensitive(t *testing.T) {
	path := writeLeadsFile(t, leadsEnvelope)

	lead, err := loadLead(path, "", "apex dental")
	require.NoError(t, err)
	assert.Equal(t, "l1", lead.ID)
}

func TestLoadLeadBareArray(t *testing.T) {
	path := writeLeadsFile(t, `[{"id": "l1", "company_name": "Apex Dental"}]`)

	lead, err := loadLead(path, "l1", "")
	require.NoError(t, err)
	assert.Equal(t, "Apex Dental", lead.CompanyName)
}

func TestLoadLeadNoMatch(t *testing.T) {
	path := writeLeadsFile(t, leadsEnvelope)

	_, err := loadLead(path, "nope", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no lead matching")
}

func TestLoadLeadEmptyFile(t *testing.T) {
	path := writeLeadsFile(t, `{"leads": []}`)

	_, err := loadLead(path, "l1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no leads")
}

func TestLoadLeadMissingFile(t *testing.T) {
	_, err := loadLead(filepath.Join(t.TempDir(), "missing.json"), "l1", "")
	assert.Error(t, err)
}
