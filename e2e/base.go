package e2e

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BasePipelineSuite struct {
	suite.Suite
	Config  Config
	WorkDir string
	Log     *slog.Logger
}

// SetupSuite loads the environment configuration and prepares the working directory
func (s *BasePipelineSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	s.Log = logs.GetLoggerFromLevel(slog.LevelInfo)
	if s.Config.KeepArtifacts {
		s.WorkDir, err = os.MkdirTemp("", "disaster-response-e2e-*")
		s.Require().NoError(err)
		s.T().Logf("Artifacts kept in %s", s.WorkDir)
	} else {
		s.WorkDir = s.T().TempDir()
	}
}

// Step prints a header for the step in the test logs, then runs it as a subtest
func (s *BasePipelineSuite) Step(name string, fn func()) bool {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
	return s.Run(name, fn)
}
