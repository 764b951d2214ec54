package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile_MissingFileUsesDefault(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	assert.Equal(t, []string{"contact", "linkedin", "email", "phone", "reach", "number"}, p.Contact.Triggers)
	assert.Equal(t, []string{"where is she now", "current job", "currently working", "where does she work now"}, p.Employer.Triggers)
	assert.Equal(t, []string{"i don't know.", "i don't have that information.", "not sure.", "i'm not sure."}, p.Fallback.Phrases)
	assert.Equal(t, "This information isn't available in Mahitha's professional or personal profile.", p.Fallback.Message)
}

func TestLoadProfile_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
name: Jane
contact:
  answer: "Write to jane@example.com."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane", p.Name)
	assert.Equal(t, "Write to jane@example.com.", p.Contact.Answer)
	assert.Equal(t, DefaultProfile().Contact.Triggers, p.Contact.Triggers)
	assert.Equal(t, DefaultProfile().Employer, p.Employer)
	assert.Equal(t, "This information isn't available in Jane's professional or personal profile.", p.Fallback.Message)
}

func TestLoadProfile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unterminated"), 0o644))

	_, err := LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode profile")
}

func TestStarterProfile(t *testing.T) {
	p := StarterProfile("Jane")

	assert.Equal(t, "Jane", p.Name)
	assert.Contains(t, p.Contact.Answer, "You can reach Jane")
	assert.Contains(t, p.Employer.Answer, "Jane is currently working")
	assert.Equal(t, DefaultProfile().Contact.Triggers, p.Contact.Triggers)
	assert.Equal(t, "This information isn't available in Jane's professional or personal profile.", p.Fallback.Message)
}
