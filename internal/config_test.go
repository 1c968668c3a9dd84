package internal

import (
	"disaster-response/ml"
	"disaster-response/nlp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadETLConfig_Defaults(t *testing.T) {
	req := require.New(t)

	config, err := LoadETLConfig()
	req.NoError(err)
	req.Equal("INFO", config.LogLevel)
	req.Equal("ETL_Preparation", config.TableName)

	options := config.CleanerOptions()
	req.Equal(";", options.Separator)
	req.Equal("child_alone", options.DroppedCategory)
	req.Equal("related", options.NormalizedCategory)
	req.Equal(2, options.ErroneousValue)
}

func TestLoadETLConfig_Overrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("TABLE_NAME", "Messages")
	t.Setenv("CATEGORY_SEPARATOR", "|")
	t.Setenv("ERRONEOUS_VALUE", "3")

	config, err := LoadETLConfig()
	req.NoError(err)
	req.Equal("Messages", config.TableName)
	req.Equal("|", config.CleanerOptions().Separator)
	req.Equal(3, config.ErroneousValue)
}

func TestLoadETLConfig_Invalid(t *testing.T) {
	t.Setenv("ERRONEOUS_VALUE", "1")
	_, err := LoadETLConfig()
	require.Error(t, err)
}

func TestLoadTrainConfig_Defaults(t *testing.T) {
	req := require.New(t)

	config, err := LoadTrainConfig()
	req.NoError(err)
	req.Equal(0.2, config.TestSize)
	req.Equal(int64(42), config.Seed)
	req.Equal(3, config.CVFolds)
	req.Equal(".training-runs", config.RunsFilepath)
	req.True(config.ReportColours)

	grid, err := config.Grid()
	req.NoError(err)
	req.Equal(ml.DefaultParamGrid(), grid)
	req.Equal(ml.ForestParams{Seed: 42}, config.BaseParams())
	req.Equal(nlp.DefaultPhrases, config.PhraseList())
}

func TestLoadTrainConfig_Overrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("GRID_N_ESTIMATORS", "5  50 5")
	t.Setenv("GRID_MIN_SAMPLES_SPLIT", "2")
	t.Setenv("PHRASES", "search and rescue; clean water ;;")
	t.Setenv("MAX_DEPTH", "8")
	t.Setenv("REPORT_COLOURS", "false")

	config, err := LoadTrainConfig()
	req.NoError(err)
	grid, err := config.Grid()
	req.NoError(err)
	req.Equal([]int{5, 50}, grid.NEstimators)
	req.Equal([]int{2}, grid.MinSamplesSplit)
	req.Equal([]string{"search and rescue", "clean water"}, config.PhraseList())
	req.Equal(8, config.BaseParams().MaxDepth)
	req.False(config.ReportColours)
}

func TestLoadTrainConfig_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"test size":        {"TEST_SIZE": "1.5"},
		"folds":            {"CV_FOLDS": "1"},
		"negative jobs":    {"JOBS": "-1"},
		"grid not integer": {"GRID_N_ESTIMATORS": "10 lots"},
		"split too small":  {"GRID_MIN_SAMPLES_SPLIT": "1 2"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := LoadTrainConfig()
			require.Error(t, err)
		})
	}
}
