package internal

import (
	"disaster-response/etl"
	"disaster-response/ml"
	"disaster-response/nlp"
	"fmt"
	"strconv"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// ETLConfig configures the process command.
type ETLConfig struct {
	LogLevel           string `env:"LOG_LEVEL,default=INFO" validate:"required"`
	TableName          string `env:"TABLE_NAME,default=ETL_Preparation" validate:"required"`
	CategorySeparator  string `env:"CATEGORY_SEPARATOR,default=;" validate:"required"`
	DroppedCategory    string `env:"DROPPED_CATEGORY,default=child_alone"`
	NormalizedCategory string `env:"NORMALIZED_CATEGORY,default=related"`
	ErroneousValue     int    `env:"ERRONEOUS_VALUE,default=2" validate:"gt=1"`
}

// TrainConfig configures the train command.
type TrainConfig struct {
	LogLevel            string  `env:"LOG_LEVEL,default=INFO" validate:"required"`
	TableName           string  `env:"TABLE_NAME,default=ETL_Preparation" validate:"required"`
	TestSize            float64 `env:"TEST_SIZE,default=0.2" validate:"gt=0,lt=1"`
	Seed                int64   `env:"SEED,default=42"`
	CVFolds             int     `env:"CV_FOLDS,default=3" validate:"gte=2"`
	Jobs                int     `env:"JOBS,default=0" validate:"gte=0"`
	GridNEstimators     string  `env:"GRID_N_ESTIMATORS,default=10 20 40" validate:"required"`
	GridMinSamplesSplit string  `env:"GRID_MIN_SAMPLES_SPLIT,default=2 3 4" validate:"required"`
	MaxDepth            int     `env:"MAX_DEPTH,default=0" validate:"gte=0"`
	MaxVocabulary       int     `env:"MAX_VOCABULARY,default=0" validate:"gte=0"`
	Phrases             string  `env:"PHRASES"`
	RunsFilepath        string  `env:"RUNS_FILEPATH,default=.training-runs" validate:"required"`
	ReportColours       bool    `env:"REPORT_COLOURS,default=true"`
}

func LoadETLConfig() (ETLConfig, error) {
	var config ETLConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return ETLConfig{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return ETLConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func LoadTrainConfig() (TrainConfig, error) {
	var config TrainConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return TrainConfig{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return TrainConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := config.Grid(); err != nil {
		return TrainConfig{}, err
	}
	return config, nil
}

func (c ETLConfig) CleanerOptions() etl.CleanerOptions {
	return etl.CleanerOptions{
		Separator:          c.CategorySeparator,
		DroppedCategory:    c.DroppedCategory,
		NormalizedCategory: c.NormalizedCategory,
		ErroneousValue:     c.ErroneousValue,
	}
}

// Grid parses the space separated hyperparameter lists.
func (c TrainConfig) Grid() (ml.ParamGrid, error) {
	nEstimators, err := positiveInts("GRID_N_ESTIMATORS", c.GridNEstimators, 1)
	if err != nil {
		return ml.ParamGrid{}, err
	}
	minSamplesSplit, err := positiveInts("GRID_MIN_SAMPLES_SPLIT", c.GridMinSamplesSplit, 2)
	if err != nil {
		return ml.ParamGrid{}, err
	}
	return ml.ParamGrid{NEstimators: nEstimators, MinSamplesSplit: minSamplesSplit}, nil
}

func (c TrainConfig) BaseParams() ml.ForestParams {
	return ml.ForestParams{MaxDepth: c.MaxDepth, Seed: c.Seed}
}

// PhraseList returns the ";" separated PHRASES, or the built-in lexicon when unset.
func (c TrainConfig) PhraseList() []string {
	if strings.TrimSpace(c.Phrases) == "" {
		return nlp.DefaultPhrases
	}
	phrases := lo.Map(strings.Split(c.Phrases, ";"), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(phrases)
}

func positiveInts(name, raw string, minimum int) ([]int, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s must list at least one value", name)
	}
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < minimum {
			return nil, fmt.Errorf("%s: %q is not an integer >= %d", name, f, minimum)
		}
		values = append(values, v)
	}
	return lo.Uniq(values), nil
}
