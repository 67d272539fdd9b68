// Package substitution provides the application layer for the meal
// substitution engine: candidate search, apply, undo and history. The
// scoring and selection logic lives in the domain package; this service
// wires it to the catalog, preference and plan collaborators and
// enforces per-plan serialization on mutations.
package substitution

import (
	"context"
	stderrors "errors"

	"github.com/alchemorsel/mealplan/internal/application/mealplan"
	domainplan "github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/substitution"
	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the substitution use cases
type Service struct {
	planRepo outbound.MealPlanRepository
	catalog  outbound.RecipeCatalog
	userRepo outbound.UserRepository
	locker   outbound.PlanLocker
	logger   *zap.Logger
}

// NewService creates a new substitution service
func NewService(
	planRepo outbound.MealPlanRepository,
	catalog outbound.RecipeCatalog,
	userRepo outbound.UserRepository,
	locker outbound.PlanLocker,
	logger *zap.Logger,
) inbound.SubstitutionService {
	return &Service{
		planRepo: planRepo,
		catalog:  catalog,
		userRepo: userRepo,
		locker:   locker,
		logger:   logger.Named("substitution-service"),
	}
}

// FindAlternatives ranks replacement candidates for one meal slot.
// Pure read: no lock is taken beyond the snapshot reads of the plan and
// catalog.
func (s *Service) FindAlternatives(ctx context.Context, q inbound.FindAlternativesQuery) (*inbound.AlternativesResult, error) {
	s.logger.Info("Searching substitution candidates",
		zap.String("plan_id", q.PlanID.String()),
		zap.Int("meal_index", q.MealIndex),
	)

	plan, err := s.loadPlan(ctx, q.PlanID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.loadPreferences(ctx, plan.OwnerID())
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("read recipe catalog", err)
	}

	opts := substitution.DefaultSearchOptions()
	if q.MaxAlternatives != 0 {
		opts.MaxAlternatives = q.MaxAlternatives
	}
	if q.Tolerance != 0 {
		opts.Tolerance = q.Tolerance
	}
	if len(q.RejectedRecipeIDs) > 0 {
		opts.Rejected = make(map[uuid.UUID]struct{}, len(q.RejectedRecipeIDs))
		for _, id := range q.RejectedRecipeIDs {
			opts.Rejected[id] = struct{}{}
		}
	}

	candidates, totalFound, err := substitution.FindCandidates(plan, q.MealIndex, catalog, prefs, opts)
	if err != nil {
		return nil, translateDomainError(err, q.PlanID, q.MealIndex)
	}

	dtos := make([]inbound.CandidateDTO, len(candidates))
	for i, c := range candidates {
		dtos[i] = inbound.CandidateDTO{
			RecipeID:        c.Profile.ID,
			Name:            c.Profile.Name,
			Cuisine:         c.Profile.Cuisine,
			PrepTimeMinutes: c.Profile.PrepTimeMinutes,
			CookTimeMinutes: c.Profile.CookTimeMinutes,
			CostCents:       c.Profile.EstimatedCostCents,
			Difficulty:      string(c.Profile.Difficulty),
			Scores:          c.Scores,
			Impact:          c.Impact,
		}
	}

	s.logger.Info("Candidate search complete",
		zap.String("plan_id", q.PlanID.String()),
		zap.Int("returned", len(dtos)),
		zap.Int("total_found", totalFound),
	)

	return &inbound.AlternativesResult{Candidates: dtos, TotalFound: totalFound}, nil
}

// ApplySubstitution swaps the recipe at a meal slot under the plan's
// exclusive lock. Validation happens before any mutation; the meal
// list, totals and history entry change together.
func (s *Service) ApplySubstitution(ctx context.Context, cmd inbound.ApplySubstitutionCommand) (*inbound.SubstitutionResult, error) {
	s.logger.Info("Applying substitution",
		zap.String("plan_id", cmd.PlanID.String()),
		zap.Int("meal_index", cmd.MealIndex),
		zap.String("new_recipe_id", cmd.NewRecipeID.String()),
		zap.String("user_id", cmd.UserID.String()),
	)

	release, err := s.locker.Acquire(ctx, cmd.PlanID)
	if err != nil {
		return nil, errors.NewPlanVersionConflictError(cmd.PlanID.String()).WithCause(err)
	}
	defer release()

	plan, err := s.loadPlan(ctx, cmd.PlanID)
	if err != nil {
		return nil, err
	}

	meal, err := plan.MealAt(cmd.MealIndex)
	if err != nil {
		return nil, translateDomainError(err, cmd.PlanID, cmd.MealIndex)
	}

	newProfile, err := s.catalog.FindByID(ctx, cmd.NewRecipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(cmd.NewRecipeID.String()).WithCause(err)
	}
	oldProfile, err := s.catalog.FindByID(ctx, meal.RecipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(meal.RecipeID.String()).WithCause(err)
	}

	impact := substitution.ComputeImpact(plan.Totals(), oldProfile, newProfile)

	if err := plan.Substitute(cmd.MealIndex, oldProfile, newProfile, cmd.UserID); err != nil {
		return nil, translateDomainError(err, cmd.PlanID, cmd.MealIndex)
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, translateDomainError(err, cmd.PlanID, cmd.MealIndex)
	}

	for _, event := range plan.Events() {
		s.logger.Debug("Domain event", zap.String("event", event.EventName()))
	}

	s.logger.Info("Substitution applied",
		zap.String("plan_id", cmd.PlanID.String()),
		zap.Int("meal_index", cmd.MealIndex),
		zap.String("impact_level", string(impact.Level)),
	)

	return &inbound.SubstitutionResult{
		Plan:             mealplan.ToDTO(plan),
		MealIndex:        cmd.MealIndex,
		OriginalRecipeID: oldProfile.ID,
		NewRecipeID:      newProfile.ID,
		Impact:           impact,
	}, nil
}

// UndoSubstitution rolls back the plan's most recent substitution under
// the plan's exclusive lock. The popped entry is discarded permanently.
func (s *Service) UndoSubstitution(ctx context.Context, cmd inbound.UndoSubstitutionCommand) (*inbound.SubstitutionResult, error) {
	s.logger.Info("Undoing substitution",
		zap.String("plan_id", cmd.PlanID.String()),
		zap.String("user_id", cmd.UserID.String()),
	)

	release, err := s.locker.Acquire(ctx, cmd.PlanID)
	if err != nil {
		return nil, errors.NewPlanVersionConflictError(cmd.PlanID.String()).WithCause(err)
	}
	defer release()

	plan, err := s.loadPlan(ctx, cmd.PlanID)
	if err != nil {
		return nil, err
	}

	entry, ok := plan.LastSubstitution()
	if !ok {
		return nil, errors.NewInvalidStateError("substitution history is empty, nothing to undo")
	}

	currentProfile, err := s.catalog.FindByID(ctx, entry.NewRecipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(entry.NewRecipeID.String()).WithCause(err)
	}
	restoredProfile, err := s.catalog.FindByID(ctx, entry.OriginalRecipeID)
	if err != nil {
		return nil, errors.NewRecipeNotFoundError(entry.OriginalRecipeID.String()).WithCause(err)
	}

	impact := substitution.ComputeImpact(plan.Totals(), currentProfile, restoredProfile)

	popped, err := plan.UndoSubstitution(currentProfile, restoredProfile, cmd.UserID)
	if err != nil {
		return nil, translateDomainError(err, cmd.PlanID, entry.MealIndex)
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, translateDomainError(err, cmd.PlanID, popped.MealIndex)
	}

	for _, event := range plan.Events() {
		s.logger.Debug("Domain event", zap.String("event", event.EventName()))
	}

	s.logger.Info("Substitution undone",
		zap.String("plan_id", cmd.PlanID.String()),
		zap.Int("meal_index", popped.MealIndex),
	)

	return &inbound.SubstitutionResult{
		Plan:             mealplan.ToDTO(plan),
		MealIndex:        popped.MealIndex,
		OriginalRecipeID: popped.NewRecipeID,
		NewRecipeID:      popped.OriginalRecipeID,
		Impact:           impact,
		Undone:           true,
	}, nil
}

// GetHistory returns the plan's substitution history oldest-first plus
// whether an undo is available
func (s *Service) GetHistory(ctx context.Context, planID uuid.UUID) (*inbound.HistoryResult, error) {
	plan, err := s.loadPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	entries, canUndo := plan.History()
	dtos := make([]inbound.HistoryEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = inbound.HistoryEntryDTO{
			MealIndex:        e.MealIndex,
			OriginalRecipeID: e.OriginalRecipeID,
			NewRecipeID:      e.NewRecipeID,
			Timestamp:        e.Timestamp,
			UserID:           e.UserID,
		}
	}

	return &inbound.HistoryResult{Entries: dtos, CanUndo: canUndo}, nil
}

// loadPlan fetches a plan or reports not-found
func (s *Service) loadPlan(ctx context.Context, planID uuid.UUID) (*domainplan.MealPlan, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, errors.NewDatabaseError("find meal plan", err)
	}
	if plan == nil {
		return nil, errors.NewMealPlanNotFoundError(planID.String())
	}
	return plan, nil
}

// loadPreferences fetches the plan owner's preference profile; a
// missing user degrades to neutral preferences rather than failing a
// read-only search
func (s *Service) loadPreferences(ctx context.Context, userID uuid.UUID) (*user.PreferenceProfile, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if u == nil {
		s.logger.Warn("Plan owner missing, scoring with neutral preferences",
			zap.String("user_id", userID.String()),
		)
		return user.DefaultPreferences(), nil
	}
	return u.Preferences(), nil
}

// translateDomainError maps domain sentinels onto the structured error
// taxonomy surfaced to callers
func translateDomainError(err error, planID uuid.UUID, mealIndex int) error {
	switch {
	case stderrors.Is(err, domainplan.ErrMealIndexOutOfRange):
		return errors.NewOutOfRangeError("meal_index", err.Error()).
			WithMetadata("meal_index", mealIndex)
	case stderrors.Is(err, domainplan.ErrNothingToUndo):
		return errors.NewInvalidStateError(err.Error())
	case stderrors.Is(err, domainplan.ErrPlanNotFound):
		return errors.NewMealPlanNotFoundError(planID.String())
	case stderrors.Is(err, recipe.ErrRecipeNotFound):
		return errors.NewAppError(errors.CodeRecipeNotFound, "Recipe not found", err.Error())
	case stderrors.Is(err, substitution.ErrMaxAlternativesOutOfRange):
		return errors.NewOutOfRangeError("max_alternatives", err.Error())
	case stderrors.Is(err, substitution.ErrToleranceOutOfRange):
		return errors.NewOutOfRangeError("nutritional_tolerance", err.Error())
	case stderrors.Is(err, domainplan.ErrVersionConflict):
		return errors.NewPlanVersionConflictError(planID.String())
	default:
		return errors.Wrap(err, "substitution operation failed")
	}
}
