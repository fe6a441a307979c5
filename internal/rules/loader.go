package rules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader loads and memoizes the rule documents. Construct one per process
// and pass it to the orchestrator; the documents are read at most once.
// Reset exists for tests only.
type Loader struct {
	scoringPath   string
	cataloguePath string

	mu     sync.Mutex
	loaded bool
	cfg    *Config
	err    error
}

// NewLoader creates a Loader reading the scoring-rules and action-catalogue
// documents from the given paths. Empty paths fall back to the built-in
// defaults.
func NewLoader(scoringPath, cataloguePath string) *Loader {
	return &Loader{scoringPath: scoringPath, cataloguePath: cataloguePath}
}

// Load returns the rule configuration, reading the documents on first call
// and caching the result (including a failure) for the life of the process.
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.cfg, l.err
	}
	l.cfg, l.err = l.read()
	l.loaded = true
	return l.cfg, l.err
}

// Reset clears the cached documents so the next Load re-reads them.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.cfg = nil
	l.err = nil
}

func (l *Loader) read() (*Config, error) {
	cfg := Defaults()

	if l.scoringPath != "" {
		var sr ScoringRules
		if err := readDocument(l.scoringPath, &sr); err != nil {
			return nil, eris.Wrap(err, "rules: read scoring rules")
		}
		cfg.Scoring = sr
	}
	if l.cataloguePath != "" {
		var ac ActionCatalogue
		if err := readDocument(l.cataloguePath, &ac); err != nil {
			return nil, eris.Wrap(err, "rules: read action catalogue")
		}
		cfg.Catalogue = ac
	}

	zap.L().Info("rules: documents loaded",
		zap.String("scoring_path", l.scoringPath),
		zap.String("catalogue_path", l.cataloguePath),
		zap.Int("tiers", len(cfg.Scoring.Tiers)),
		zap.Int("client_types", len(cfg.Catalogue.ClientTypes)),
	)

	return cfg, nil
}

// readDocument unmarshals a JSON or YAML document by file extension.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return eris.Wrapf(err, "unmarshal yaml %s", path)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return eris.Wrapf(err, "unmarshal json %s", path)
		}
	}
	return nil
}
