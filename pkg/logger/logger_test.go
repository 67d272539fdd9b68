package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) TestNew() {
	s.Run("FileOutputPath_ShouldWriteToFile", func() {
		// Arrange
		path := filepath.Join(s.T().TempDir(), "app.log")

		// Act
		log, err := New(Config{
			Level:       "info",
			Format:      "json",
			OutputPaths: []string{path},
		})

		// Assert
		s.Require().NoError(err)
		log.Info("catalog warmed", zap.Int("recipes", 3))
		s.Require().NoError(log.Sync())

		data, err := os.ReadFile(path)
		s.Require().NoError(err)
		s.Contains(string(data), "catalog warmed")
		s.Contains(string(data), `"recipes":3`)
	})

	s.Run("LevelFiltering_ShouldDropBelowConfiguredLevel", func() {
		// Arrange
		path := filepath.Join(s.T().TempDir(), "app.log")
		log, err := New(Config{
			Level:       "warn",
			Format:      "json",
			OutputPaths: []string{path},
		})
		s.Require().NoError(err)

		// Act
		log.Info("quiet")
		log.Warn("loud")
		s.Require().NoError(log.Sync())

		// Assert
		data, err := os.ReadFile(path)
		s.Require().NoError(err)
		s.NotContains(string(data), "quiet")
		s.Contains(string(data), "loud")
	})

	s.Run("NoOutputPaths_ShouldDefaultToStdout", func() {
		// Act
		log, err := New(Config{Level: "info", Format: "json"})

		// Assert
		s.Require().NoError(err)
		s.NotNil(log)
	})

	s.Run("UnresolvableOutputPath_ShouldFail", func() {
		// Arrange
		path := filepath.Join(s.T().TempDir(), "missing", "nested", "app.log")

		// Act
		_, err := New(Config{Level: "info", OutputPaths: []string{path}})

		// Assert
		s.Error(err)
	})

	s.Run("UnknownLevel_ShouldDefaultToInfo", func() {
		// Arrange
		path := filepath.Join(s.T().TempDir(), "app.log")
		log, err := New(Config{
			Level:       "chatty",
			Format:      "json",
			OutputPaths: []string{path},
		})
		s.Require().NoError(err)

		// Act
		log.Debug("hidden")
		log.Info("visible")
		s.Require().NoError(log.Sync())

		// Assert
		data, err := os.ReadFile(path)
		s.Require().NoError(err)
		s.NotContains(string(data), "hidden")
		s.Contains(string(data), "visible")
	})
}
