package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/compliance-cli/internal/model"
	"github.com/sells-group/compliance-cli/internal/rules"
	"github.com/sells-group/compliance-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func newLoader() *rules.Loader {
	return rules.NewLoader(cfg.Rules.ScoringPath, cfg.Rules.CataloguePath)
}

// assessmentInput is the JSON shape of one questionnaire submission.
type assessmentInput struct {
	Category model.ClientCategory `json:"category"`
	Answers  model.Answers        `json:"answers"`
}

func (in assessmentInput) validate() error {
	switch in.Category {
	case model.CategoryIndividual, model.CategoryCorporate:
	default:
		return eris.Errorf("category must be individual or corporate, got %q", in.Category)
	}
	if len(in.Answers) == 0 {
		return eris.New("answers must not be empty")
	}
	return nil
}

func readInputFile(path string) (assessmentInput, error) {
	var in assessmentInput
	data, err := os.ReadFile(path)
	if err != nil {
		return in, eris.Wrap(err, "read answers file")
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, eris.Wrap(err, "parse answers file")
	}
	return in, nil
}

func readBatchFile(path string) ([]assessmentInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read batch file")
	}
	var inputs []assessmentInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, eris.Wrap(err, "parse batch file")
	}
	return inputs, nil
}
