package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PlanArenaTestSuite provides a test suite for the per-plan lock arena
type PlanArenaTestSuite struct {
	suite.Suite
	ctx   context.Context
	arena *PlanArena
}

// SetupTest creates a fresh arena per test
func (suite *PlanArenaTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.arena = NewPlanArena().(*PlanArena)
}

// TestAcquire tests exclusive acquisition and release
func (suite *PlanArenaTestSuite) TestAcquire() {
	suite.Run("FreePlan_ShouldAcquireImmediately", func() {
		// Act
		release, err := suite.arena.Acquire(suite.ctx, uuid.New())

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), release)
		release()
	})

	suite.Run("HeldPlan_ShouldBlockUntilReleased", func() {
		// Arrange
		planID := uuid.New()
		release, err := suite.arena.Acquire(suite.ctx, planID)
		require.NoError(suite.T(), err)

		acquired := make(chan struct{})
		go func() {
			second, err := suite.arena.Acquire(suite.ctx, planID)
			assert.NoError(suite.T(), err)
			second()
			close(acquired)
		}()

		// Act & Assert
		select {
		case <-acquired:
			suite.T().Fatal("second acquire succeeded while lock was held")
		case <-time.After(50 * time.Millisecond):
		}

		release()
		select {
		case <-acquired:
		case <-time.After(time.Second):
			suite.T().Fatal("second acquire never completed after release")
		}
	})

	suite.Run("DifferentPlans_ShouldNotContend", func() {
		// Act
		releaseA, errA := suite.arena.Acquire(suite.ctx, uuid.New())
		releaseB, errB := suite.arena.Acquire(suite.ctx, uuid.New())

		// Assert
		require.NoError(suite.T(), errA)
		require.NoError(suite.T(), errB)
		releaseA()
		releaseB()
	})

	suite.Run("CancelledContext_ShouldAbortWait", func() {
		// Arrange
		planID := uuid.New()
		release, err := suite.arena.Acquire(suite.ctx, planID)
		require.NoError(suite.T(), err)
		defer release()

		ctx, cancel := context.WithTimeout(suite.ctx, 20*time.Millisecond)
		defer cancel()

		// Act
		second, err := suite.arena.Acquire(ctx, planID)

		// Assert
		assert.ErrorIs(suite.T(), err, context.DeadlineExceeded)
		assert.Nil(suite.T(), second)
	})

	suite.Run("DoubleRelease_ShouldBeSafe", func() {
		// Arrange
		planID := uuid.New()
		release, err := suite.arena.Acquire(suite.ctx, planID)
		require.NoError(suite.T(), err)

		// Act
		release()
		release()

		// Assert
		again, err := suite.arena.Acquire(suite.ctx, planID)
		require.NoError(suite.T(), err)
		again()
	})
}

// TestSerialization tests that concurrent holders never overlap
func (suite *PlanArenaTestSuite) TestSerialization() {
	suite.Run("ConcurrentAcquirers_ShouldRunOneAtATime", func() {
		// Arrange
		planID := uuid.New()
		var wg sync.WaitGroup
		var holders, maxHolders int
		var mu sync.Mutex

		// Act
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := suite.arena.Acquire(suite.ctx, planID)
				assert.NoError(suite.T(), err)
				defer release()

				mu.Lock()
				holders++
				if holders > maxHolders {
					maxHolders = holders
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				holders--
				mu.Unlock()
			}()
		}
		wg.Wait()

		// Assert
		assert.Equal(suite.T(), 1, maxHolders)
	})
}

// TestPlanArenaTestSuite runs the plan arena test suite
func TestPlanArenaTestSuite(t *testing.T) {
	suite.Run(t, new(PlanArenaTestSuite))
}
