package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rpggio/coursetrack/internal/domain/course"
	"github.com/rpggio/coursetrack/internal/repository"
)

// Service owns the live course statuses. Every mutation is applied to a copy,
// written through to the repository, and only then becomes the current state.
type Service struct {
	repo   Repository
	logger *slog.Logger
	opts   Options

	mu    sync.Mutex
	state course.Snapshot
	ready bool
}

// NewService creates a new progress service.
func NewService(repo Repository, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	return &Service{repo: repo, logger: logger, opts: opts}
}

// Initialize restores the persisted snapshot, or seeds a fresh all-pending
// snapshot from groups and persists it when nothing was stored yet. A stored
// snapshot is used as-is, without reconciling it against groups.
func (s *Service) Initialize(ctx context.Context, groups []course.Group) (course.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("curriculum loaded",
		"groups", len(groups),
		"total_units", course.DeriveAggregates(course.Snapshot{Groups: groups}).TotalUnits,
	)

	data, err := s.repo.Get(ctx, s.opts.Key)
	switch {
	case err == nil:
		snap, decodeErr := course.Decode(data)
		if decodeErr == nil {
			s.state, s.ready = snap, true
			s.logger.Info("progress restored", "key", s.opts.Key, "groups", len(snap.Groups))
			return snap.Clone(), nil
		}
		if !s.opts.ResetOnCorrupt {
			return course.Snapshot{}, fmt.Errorf("restoring progress: %w", decodeErr)
		}
		s.logger.Warn("discarding malformed progress", "key", s.opts.Key, "error", decodeErr)
	case errors.Is(err, repository.ErrNotFound):
	default:
		return course.Snapshot{}, fmt.Errorf("reading progress: %w", err)
	}

	fresh := course.Fresh(groups)
	if err := s.persist(ctx, fresh); err != nil {
		return course.Snapshot{}, err
	}
	s.state, s.ready = fresh, true
	s.logger.Info("progress seeded", "key", s.opts.Key, "groups", len(fresh.Groups))
	return fresh.Clone(), nil
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() (course.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return course.Snapshot{}, ErrNotInitialized
	}
	return s.state.Clone(), nil
}

// Aggregates derives summary statistics from the current state.
func (s *Service) Aggregates() (course.Aggregates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return course.Aggregates{}, ErrNotInitialized
	}
	return course.DeriveAggregates(s.state), nil
}

// Filter returns the current state narrowed to courses matching filter. Each
// selected course keeps its index in the unfiltered group.
func (s *Service) Filter(filter string) (course.FilteredView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return course.FilteredView{}, ErrNotInitialized
	}
	return course.FilterByStatus(s.state, filter)
}

// UnmetPrerequisites lists prerequisites of the addressed course that are not
// passed yet.
func (s *Service) UnmetPrerequisites(groupKey string, index int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, ErrNotInitialized
	}
	return course.UnmetPrerequisites(s.state, groupKey, index)
}

// SetStatus changes the status of a single course and persists the snapshot.
func (s *Service) SetStatus(ctx context.Context, groupKey string, index int, status course.Status) (course.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return course.Course{}, ErrNotInitialized
	}
	next, err := course.SetStatus(s.state, groupKey, index, status)
	if err != nil {
		return course.Course{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return course.Course{}, err
	}

	s.logger.Debug("course status set", "group", groupKey, "index", index, "status", status)
	g, _ := next.Clone().Group(groupKey)
	return g.Courses[index], nil
}

// SetGroupStatus changes the status of every course in a group and persists
// the snapshot.
func (s *Service) SetGroupStatus(ctx context.Context, groupKey string, status course.Status) (course.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return course.Group{}, ErrNotInitialized
	}
	next, err := course.SetGroupStatus(s.state, groupKey, status)
	if err != nil {
		return course.Group{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return course.Group{}, err
	}

	s.logger.Debug("group status set", "group", groupKey, "status", status)
	g, _ := next.Clone().Group(groupKey)
	return g, nil
}

// ToggleGroupPassed marks every course in the group passed, or back to
// pending when all of them already are. It returns the applied status.
func (s *Service) ToggleGroupPassed(ctx context.Context, groupKey string) (course.Group, course.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return course.Group{}, "", ErrNotInitialized
	}
	next, applied, err := course.ToggleGroupPassed(s.state, groupKey)
	if err != nil {
		return course.Group{}, "", err
	}
	if err := s.commit(ctx, next); err != nil {
		return course.Group{}, "", err
	}

	s.logger.Debug("group toggled", "group", groupKey, "status", applied)
	g, _ := next.Clone().Group(groupKey)
	return g, applied, nil
}

// commit persists next and makes it the current state. On a failed write the
// current state is kept.
func (s *Service) commit(ctx context.Context, next course.Snapshot) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Service) persist(ctx context.Context, snap course.Snapshot) error {
	data, err := course.Encode(snap)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	if err := s.repo.Set(ctx, s.opts.Key, data); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}
