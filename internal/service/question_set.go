package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quizset/internal/cache"
	"quizset/internal/config"
	"quizset/internal/domain"
	"quizset/internal/dto"
	"quizset/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuestionSetService defines the operations exposed over question sets
type QuestionSetService interface {
	// Validate checks the invariants using the configured policy.
	Validate(set domain.QuestionSet) error
	// Register validates and stores a set, replacing any set with the same id.
	Register(ctx context.Context, set domain.QuestionSet) error
	// RegisterAll validates every set before storing any of them in one transaction.
	RegisterAll(ctx context.Context, sets []domain.QuestionSet) error
	Get(ctx context.Context, id string) (*domain.QuestionSet, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
	// CheckAnswer grades value against the question at position ("example" or an index).
	CheckAnswer(ctx context.Context, setID, position, value string) (*dto.CheckAnswerResponse, error)
}

type questionSetService struct {
	repo      domain.QuestionSetRepository
	txManager domain.TransactionManager
	cache     domain.Cache
	cfg       *config.Config
	group     singleflight.Group
}

// NewQuestionSetService wires the service. cache may be nil, in which case every read hits the repository.
func NewQuestionSetService(repo domain.QuestionSetRepository, txManager domain.TransactionManager, cache domain.Cache, cfg *config.Config) QuestionSetService {
	return &questionSetService{
		repo:      repo,
		txManager: txManager,
		cache:     cache,
		cfg:       cfg,
	}
}

func (s *questionSetService) Validate(set domain.QuestionSet) error {
	if s.cfg != nil && s.cfg.Validation.Policy == config.PolicyCollect {
		if errs := domain.ValidateAll(set); errs != nil {
			return errs
		}
		return nil
	}
	return domain.Validate(set)
}

func (s *questionSetService) Register(ctx context.Context, set domain.QuestionSet) error {
	return s.RegisterAll(ctx, []domain.QuestionSet{set})
}

func (s *questionSetService) RegisterAll(ctx context.Context, sets []domain.QuestionSet) error {
	for _, set := range sets {
		if err := s.Validate(set); err != nil {
			logger.Get().Warn("Rejected invalid question set",
				zap.String("set_id", set.ID),
				zap.Error(err),
			)
			return err
		}
	}

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		for _, set := range sets {
			if err := s.repo.Save(ctx, set); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Get().Error("Failed to save question sets", zap.Int("count", len(sets)), zap.Error(err))
		return domain.NewInternalError("failed to save question set", err)
	}

	for _, set := range sets {
		s.evict(ctx, set.ID)
		logger.Get().Info("Registered question set",
			zap.String("set_id", set.ID),
			zap.Int("questions", len(set.Questions)),
		)
	}
	return nil
}

func (s *questionSetService) Get(ctx context.Context, id string) (*domain.QuestionSet, error) {
	if id == "" {
		return nil, domain.NewInvalidInputError("question set id is required")
	}
	if set, ok := s.fromCache(ctx, id); ok {
		return set, nil
	}

	// Callers waiting on the same id share this load, so it must not end with the first caller's request.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(id, func() (interface{}, error) {
		set, err := s.repo.GetByID(loadCtx, id)
		if err != nil {
			return nil, domain.NewInternalError("failed to load question set", err)
		}
		if set == nil {
			return nil, domain.NewQuestionSetNotFoundError(id)
		}
		s.toCache(loadCtx, *set)
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	set := *v.(*domain.QuestionSet)
	return &set, nil
}

func (s *questionSetService) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list question sets", err)
	}
	return ids, nil
}

func (s *questionSetService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.NewInternalError("failed to delete question set", err)
	}
	s.evict(ctx, id)
	if !deleted {
		return domain.NewQuestionSetNotFoundError(id)
	}
	logger.Get().Info("Deleted question set", zap.String("set_id", id))
	return nil
}

func (s *questionSetService) CheckAnswer(ctx context.Context, setID, position, value string) (*dto.CheckAnswerResponse, error) {
	loc, err := domain.ParseLocator(setID, position)
	if err != nil {
		return nil, err
	}
	set, err := s.Get(ctx, setID)
	if err != nil {
		return nil, err
	}
	q, ok := set.Lookup(loc)
	if !ok {
		return nil, domain.NewQuestionNotFoundError(loc)
	}

	resp := &dto.CheckAnswerResponse{
		SetID:        setID,
		Question:     loc.Position(),
		Role:         string(loc.Role),
		Correct:      q.IsCorrect(value),
		CorrectValue: q.Correct,
		Explanation:  q.Explanation,
	}
	if opt, ok := q.OptionByValue(value); ok {
		resp.SelectedLabel = opt.Label
	}
	return resp, nil
}

func (s *questionSetService) fromCache(ctx context.Context, id string) (*domain.QuestionSet, bool) {
	if s.cache == nil {
		return nil, false
	}
	key := cache.QuestionSetKey(id)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Question set cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var set domain.QuestionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		logger.Get().Warn("Discarding unreadable cached question set", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	logger.Get().Debug("Question set cache hit", zap.String("set_id", id))
	return &set, true
}

func (s *questionSetService) toCache(ctx context.Context, set domain.QuestionSet) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(set)
	if err != nil {
		logger.Get().Warn("Failed to encode question set for cache", zap.String("set_id", set.ID), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cache.QuestionSetKey(set.ID), string(data), s.ttl()); err != nil {
		logger.Get().Warn("Failed to cache question set", zap.String("set_id", set.ID), zap.Error(err))
	}
}

func (s *questionSetService) evict(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.QuestionSetKey(id)); err != nil {
		logger.Get().Warn("Failed to evict cached question set", zap.String("set_id", id), zap.Error(err))
	}
}

func (s *questionSetService) ttl() time.Duration {
	if s.cfg == nil {
		return 0
	}
	return s.cfg.Cache.QuestionSetTTL
}
