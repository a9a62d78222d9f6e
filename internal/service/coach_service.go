package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"alcyxob/gotrain/internal/domain"
	"alcyxob/gotrain/internal/planner"
	"alcyxob/gotrain/internal/provider"
	"alcyxob/gotrain/internal/repository"
	"alcyxob/gotrain/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrNotConnected        = errors.New("not connected to the activity provider, please reconnect")
	ErrOperationInProgress = errors.New("another operation of this kind is still running")
	ErrGoalsMissing        = errors.New("no saved goals, save goals before generating a plan")
	ErrNoPlan              = errors.New("no current plan")
	ErrValidationFailed    = errors.New("goals validation failed")
	ErrExportUnavailable   = errors.New("plan export storage is not configured")
)

// PlanResult is what a generation attempt produced. Plan is nil when the
// model's reply did not decode; RawText is then shown literally.
type PlanResult struct {
	RawText string             `json:"rawText"`
	Plan    *domain.WeeklyPlan `json:"plan,omitempty"`
}

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Reply       domain.ChatMessage `json:"reply"`
	PlanUpdated bool               `json:"planUpdated"`
	Plan        *domain.WeeklyPlan `json:"plan,omitempty"`
}

// CoachService orchestrates the planning session: goals, the provider
// connection, data refresh, plan generation and the chat revision loop.
type CoachService interface {
	GetGoals(ctx context.Context) (domain.UserGoals, error)
	SaveGoals(ctx context.Context, goals domain.UserGoals) (domain.UserGoals, error)
	ToggleActivity(ctx context.Context, tag string) (domain.UserGoals, error)

	GetUnits(ctx context.Context) (domain.Units, error)
	SaveUnits(ctx context.Context, units domain.Units) (domain.Units, error)

	ConnectURL() string
	CompleteConnection(ctx context.Context, code string) error
	Disconnect(ctx context.Context) error
	Reset(ctx context.Context) error

	GetActivities(ctx context.Context) ([]domain.ActivityRecord, error)
	RefreshActivities(ctx context.Context) ([]domain.ActivityRecord, error)

	GeneratePlan(ctx context.Context) (*PlanResult, error)
	CurrentPlan(ctx context.Context) (*PlanResult, error)
	ExportPlan(ctx context.Context) (string, error)

	ExerciseStats(ctx context.Context) ([]domain.ExerciseStat, error)

	Transcript(ctx context.Context) ([]domain.ChatMessage, error)
	SendMessage(ctx context.Context, content string) (*ChatResult, error)
}

// coachService implements CoachService.
type coachService struct {
	repo         repository.SessionRepository
	store        *PlanStore
	tokens       *TokenManager
	oauth        provider.OAuthProvider
	activities   provider.ActivitySource
	strength     provider.StrengthSource // nil when the strength source is not configured
	completer    provider.Completer
	archive      storage.PlanArchive // nil when export storage is not configured
	redirectURI  string
	defaultUnits domain.Units
	hevyPageSize int
	now          func() time.Time

	// Per-operation-class busy flags. Two operations of the same class never
	// overlap; operations of different classes may (last write to the plan
	// store wins, per the session design).
	generateBusy atomic.Bool
	refreshBusy  atomic.Bool
	chatBusy     atomic.Bool
}

// CoachServiceOptions bundles the collaborators of the coach service.
type CoachServiceOptions struct {
	Repo         repository.SessionRepository
	Store        *PlanStore
	Tokens       *TokenManager
	OAuth        provider.OAuthProvider
	Activities   provider.ActivitySource
	Strength     provider.StrengthSource
	Completer    provider.Completer
	Archive      storage.PlanArchive
	RedirectURI  string
	DefaultUnits domain.Units
	HevyPageSize int
}

// NewCoachService creates a new coachService.
func NewCoachService(opts CoachServiceOptions) CoachService {
	pageSize := opts.HevyPageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	units := opts.DefaultUnits
	if units.Distance == "" || units.Weight == "" {
		units = domain.DefaultUnits()
	}
	return &coachService{
		repo:         opts.Repo,
		store:        opts.Store,
		tokens:       opts.Tokens,
		oauth:        opts.OAuth,
		activities:   opts.Activities,
		strength:     opts.Strength,
		completer:    opts.Completer,
		archive:      opts.Archive,
		redirectURI:  opts.RedirectURI,
		defaultUnits: units,
		hevyPageSize: pageSize,
		now:          time.Now,
	}
}

// acquire claims a busy flag or reports an in-progress operation of the
// same class.
func acquire(flag *atomic.Bool) error {
	if !flag.CompareAndSwap(false, true) {
		return ErrOperationInProgress
	}
	return nil
}

// --- Goals & units ---

func (s *coachService) GetGoals(ctx context.Context) (domain.UserGoals, error) {
	goals, err := s.repo.GetGoals(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.DefaultGoals(), nil
		}
		return domain.UserGoals{}, err
	}
	return *goals, nil
}

func (s *coachService) SaveGoals(ctx context.Context, goals domain.UserGoals) (domain.UserGoals, error) {
	if err := validateGoals(goals); err != nil {
		return domain.UserGoals{}, err
	}
	if err := s.repo.SaveGoals(ctx, goals); err != nil {
		return domain.UserGoals{}, err
	}
	return goals, nil
}

func (s *coachService) ToggleActivity(ctx context.Context, tag string) (domain.UserGoals, error) {
	if tag == "" {
		return domain.UserGoals{}, ErrValidationFailed
	}
	goals, err := s.GetGoals(ctx)
	if err != nil {
		return domain.UserGoals{}, err
	}
	goals = domain.ToggleActivity(goals, tag)
	if err := s.repo.SaveGoals(ctx, goals); err != nil {
		return domain.UserGoals{}, err
	}
	return goals, nil
}

func validateGoals(goals domain.UserGoals) error {
	if goals.MainGoal == "" {
		return fmt.Errorf("%w: main goal is required", ErrValidationFailed)
	}
	if goals.DaysPerWeek < 1 || goals.DaysPerWeek > 7 {
		return fmt.Errorf("%w: days per week must be between 1 and 7", ErrValidationFailed)
	}
	switch goals.FitnessLevel {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return fmt.Errorf("%w: unknown fitness level %q", ErrValidationFailed, goals.FitnessLevel)
	}
	if len(goals.PreferredActivities) == 0 {
		return fmt.Errorf("%w: at least one preferred activity is required", ErrValidationFailed)
	}
	return nil
}

func (s *coachService) GetUnits(ctx context.Context) (domain.Units, error) {
	units, err := s.repo.GetUnits(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.defaultUnits, nil
		}
		return domain.Units{}, err
	}
	return *units, nil
}

func (s *coachService) SaveUnits(ctx context.Context, units domain.Units) (domain.Units, error) {
	if units.Distance != "kilometers" && units.Distance != "miles" {
		return domain.Units{}, fmt.Errorf("%w: unknown distance unit %q", ErrValidationFailed, units.Distance)
	}
	if units.Weight != "kg" && units.Weight != "lbs" {
		return domain.Units{}, fmt.Errorf("%w: unknown weight unit %q", ErrValidationFailed, units.Weight)
	}
	if err := s.repo.SaveUnits(ctx, units); err != nil {
		return domain.Units{}, err
	}
	return units, nil
}

// --- Connection lifecycle ---

func (s *coachService) ConnectURL() string {
	return s.oauth.AuthorizeURL(s.redirectURI)
}

func (s *coachService) CompleteConnection(ctx context.Context, code string) error {
	creds, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}
	return s.repo.SaveCredentials(ctx, *creds)
}

// Disconnect tears down everything scoped to the connected account.
// Goals and units survive; they belong to the user, not the connection.
func (s *coachService) Disconnect(ctx context.Context) error {
	return s.repo.ClearSession(ctx)
}

// Reset is the full wipe: the session plus goals and units.
func (s *coachService) Reset(ctx context.Context) error {
	return s.repo.ClearAll(ctx)
}

// --- Activities ---

func (s *coachService) GetActivities(ctx context.Context) ([]domain.ActivityRecord, error) {
	return s.repo.GetActivities(ctx)
}

// RefreshActivities fetches the last 7 days and replaces the cached list.
// On fetch failure the previous cache is left in place.
func (s *coachService) RefreshActivities(ctx context.Context) ([]domain.ActivityRecord, error) {
	if err := acquire(&s.refreshBusy); err != nil {
		return nil, err
	}
	defer s.refreshBusy.Store(false)

	token, err := s.tokens.ValidToken(ctx)
	if err != nil {
		return nil, err
	}

	fetched, err := s.activities.RecentActivities(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveActivities(ctx, fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// --- Plan generation ---

// GeneratePlan runs the full initial-generation path: refresh activity data,
// gather strength stats, build the prompt, call the model and store whatever
// came back. A reply that does not decode is not an error: the raw text is
// stored and served literally.
func (s *coachService) GeneratePlan(ctx context.Context) (*PlanResult, error) {
	if err := acquire(&s.generateBusy); err != nil {
		return nil, err
	}
	defer s.generateBusy.Store(false)

	goals, err := s.repo.GetGoals(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalsMissing
		}
		return nil, err
	}

	token, err := s.tokens.ValidToken(ctx)
	if err != nil {
		return nil, err
	}

	activities, err := s.activities.RecentActivities(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveActivities(ctx, activities); err != nil {
		return nil, err
	}

	stats := s.fetchStats(ctx)

	units, err := s.GetUnits(ctx)
	if err != nil {
		return nil, err
	}

	prompt := planner.BuildPlanPrompt(*goals, activities, stats, units, s.now())
	raw, err := s.completer.Complete(ctx, []provider.Message{
		{Role: "system", Content: planner.GenerationSystemPrompt},
		{Role: "user", Content: prompt},
	}, true)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, raw); err != nil {
		return nil, err
	}

	result := &PlanResult{RawText: raw}
	plan, err := planner.ParsePlan(raw)
	if err != nil {
		log.Printf("WARN: Generated plan did not decode, keeping raw text: %v", err)
		return result, nil
	}
	result.Plan = plan
	return result, nil
}

// fetchStats pulls strength sessions and aggregates them. The strength
// source is optional and its failure must not block plan generation, so
// errors degrade to an empty stat list with a warning.
func (s *coachService) fetchStats(ctx context.Context) []domain.ExerciseStat {
	if s.strength == nil {
		return nil
	}
	sessions, err := s.strength.Sessions(ctx, 1, s.hevyPageSize)
	if err != nil {
		log.Printf("WARN: Strength history unavailable, generating without stats: %v", err)
		return nil
	}
	return planner.AggregateExerciseStats(sessions)
}

func (s *coachService) CurrentPlan(ctx context.Context) (*PlanResult, error) {
	snapshot, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrNoPlan
	}
	return &PlanResult{RawText: snapshot.RawText, Plan: snapshot.Plan}, nil
}

// ExportPlan uploads the current raw plan to the archive bucket and returns
// a presigned download URL.
func (s *coachService) ExportPlan(ctx context.Context) (string, error) {
	if s.archive == nil {
		return "", ErrExportUnavailable
	}

	snapshot, err := s.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if snapshot == nil {
		return "", ErrNoPlan
	}

	objectKey := fmt.Sprintf("plans/%s.json", uuid.NewString())
	if err := s.archive.StorePlan(ctx, objectKey, snapshot.RawText); err != nil {
		return "", err
	}
	return s.archive.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}

// --- Strength stats ---

// ExerciseStats fetches the strength history and aggregates it. Unlike the
// generation path, errors here surface verbatim: the user explicitly asked
// for the stats.
func (s *coachService) ExerciseStats(ctx context.Context) ([]domain.ExerciseStat, error) {
	if s.strength == nil {
		return []domain.ExerciseStat{}, nil
	}
	sessions, err := s.strength.Sessions(ctx, 1, s.hevyPageSize)
	if err != nil {
		return nil, err
	}
	return planner.AggregateExerciseStats(sessions), nil
}

// --- Chat ---

func (s *coachService) Transcript(ctx context.Context) ([]domain.ChatMessage, error) {
	return s.repo.GetTranscript(ctx)
}

// SendMessage runs one turn of the coach chat: persist the user message,
// call the model with full context, then route the reply through the
// revision handler. Only a cleanly decoded revision replaces the stored
// plan; a malformed one is logged and the previous plan stays untouched.
func (s *coachService) SendMessage(ctx context.Context, content string) (*ChatResult, error) {
	if err := acquire(&s.chatBusy); err != nil {
		return nil, err
	}
	defer s.chatBusy.Store(false)

	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", ErrValidationFailed)
	}

	goals, err := s.GetGoals(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.repo.GetActivities(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.GetUnits(ctx)
	if err != nil {
		return nil, err
	}

	var currentPlan *domain.WeeklyPlan
	if snapshot, err := s.store.Get(ctx); err != nil {
		return nil, err
	} else if snapshot != nil {
		currentPlan = snapshot.Plan
	}

	userMsg := domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleUser,
		Content: content,
	}
	if err := s.repo.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	transcript, err := s.repo.GetTranscript(ctx)
	if err != nil {
		return nil, err
	}

	messages := make([]provider.Message, 0, len(transcript)+1)
	messages = append(messages, provider.Message{
		Role:    "system",
		Content: planner.BuildChatSystemPrompt(goals, activities, currentPlan, units),
	})
	for _, msg := range transcript {
		messages = append(messages, provider.Message{Role: string(msg.Role), Content: msg.Content})
	}

	reply, err := s.completer.Complete(ctx, messages, false)
	if err != nil {
		return nil, err
	}

	revision := planner.HandleCoachReply(reply)
	switch revision.Outcome {
	case planner.OutcomePlanReplaced:
		if err := s.store.Set(ctx, revision.PlanText); err != nil {
			return nil, err
		}
	case planner.OutcomeParseFailed:
		// Recoverable: the user still sees the model's attempt, the stored
		// plan stays as it was.
		log.Printf("WARN: Revised plan payload did not decode: %v", revision.ParseErr)
	}

	assistantMsg := domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.RoleAssistant,
		Content: revision.DisplayMessage,
	}
	if err := s.repo.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &ChatResult{
		Reply:       assistantMsg,
		PlanUpdated: revision.Outcome == planner.OutcomePlanReplaced,
		Plan:        revision.ReplacementPlan,
	}, nil
}
