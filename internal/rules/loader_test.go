package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-cli/internal/model"
)

func TestLoader_Defaults(t *testing.T) {
	l := NewLoader("", "")

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Scoring.Tiers, 3)
	assert.Contains(t, cfg.Catalogue.ClientTypes, "individual")
	assert.Contains(t, cfg.Catalogue.ClientTypes, "company")
	assert.Contains(t, cfg.Catalogue.ClientTypes, "partnership")
}

func TestLoader_Memoizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")
	doc := `{"tiers":[{"tier":"LOW","min":0}],"sections":{},"triggers":{}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	l := NewLoader(path, "")
	cfg1, err := l.Load()
	require.NoError(t, err)
	require.Len(t, cfg1.Scoring.Tiers, 1)

	// Rewriting the file must not change the loaded documents.
	doc2 := `{"tiers":[{"tier":"LOW","min":0},{"tier":"HIGH","min":5}],"sections":{},"triggers":{}}`
	require.NoError(t, os.WriteFile(path, []byte(doc2), 0644))

	cfg2, err := l.Load()
	require.NoError(t, err)
	assert.Same(t, cfg1, cfg2)
	assert.Len(t, cfg2.Scoring.Tiers, 1)
}

func TestLoader_ResetRereads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")
	doc := `{"tiers":[{"tier":"LOW","min":0}],"sections":{},"triggers":{}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	l := NewLoader(path, "")
	cfg1, err := l.Load()
	require.NoError(t, err)
	require.Len(t, cfg1.Scoring.Tiers, 1)

	doc2 := `{"tiers":[{"tier":"LOW","min":0,"max":4},{"tier":"HIGH","min":5}],"sections":{},"triggers":{}}`
	require.NoError(t, os.WriteFile(path, []byte(doc2), 0644))

	l.Reset()
	cfg2, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, cfg2.Scoring.Tiers, 2)
}

func TestLoader_CachesFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")

	l := NewLoader(path, "")
	_, err := l.Load()
	require.Error(t, err)

	// Creating the file after the failed load must not change the result.
	require.NoError(t, os.WriteFile(path, []byte(`{"tiers":[{"tier":"LOW","min":0}]}`), 0644))
	_, err = l.Load()
	assert.Error(t, err)
}

func TestLoader_YAMLScoringDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	doc := `
tiers:
  - tier: LOW
    min: 0
    max: 2
  - tier: HIGH
    min: 3
sections:
  individual:
    - name: Profile
      factors:
        - id: residency
          fieldId: residency_status
          label: Residency status
          scored: true
          options:
            - equals: uk_resident
              value: 0
            - prefix: high_risk_
              value: 5
triggers: {}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	l := NewLoader(path, "")
	cfg, err := l.Load()
	require.NoError(t, err)

	require.Len(t, cfg.Scoring.Tiers, 2)
	sections := cfg.Scoring.Sections[model.CategoryIndividual]
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Factors, 1)
	assert.Equal(t, "residency_status", sections[0].Factors[0].FieldID)
	assert.Equal(t, "high_risk_", sections[0].Factors[0].Options[1].Prefix)

	// Catalogue falls back to defaults.
	assert.Contains(t, cfg.Catalogue.ClientTypes, "individual")
}

func TestLoader_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	l := NewLoader(path, "")
	_, err := l.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scoring rules")
}

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}
