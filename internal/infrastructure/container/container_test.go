package container

import (
	"testing"

	"github.com/alchemorsel/mealplan/internal/infrastructure/config"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ContainerTestSuite struct {
	suite.Suite
}

func TestContainerSuite(t *testing.T) {
	suite.Run(t, new(ContainerTestSuite))
}

func (s *ContainerTestSuite) TestJWTSecret() {
	s.Run("ConfiguredSecret_ShouldBeUsedVerbatim", func() {
		// Arrange
		cfg := &config.Config{}
		cfg.Auth.JWTSecret = "configured-signing-secret"

		// Act
		secret, err := jwtSecret(cfg, zap.NewNop())

		// Assert
		s.Require().NoError(err)
		s.Equal("configured-signing-secret", secret)
	})

	s.Run("MissingSecret_ShouldGenerateEphemeralSecret", func() {
		// Arrange
		cfg := &config.Config{}
		cfg.App.Environment = "development"

		// Act
		first, err := jwtSecret(cfg, zap.NewNop())
		s.Require().NoError(err)
		second, err := jwtSecret(cfg, zap.NewNop())
		s.Require().NoError(err)

		// Assert
		s.Len(first, 64)
		s.NotEqual(first, second)
	})
}
