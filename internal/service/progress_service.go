package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"class-companion/internal/domain"
	"class-companion/internal/logger"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// CourseSource hands out fresh copies of the static course content.
type CourseSource interface {
	Lessons() []*domain.Lesson
}

// WriteScope identifies who is mutating and, optionally, which tree version
// they last saw. A nil IfMatch means last write wins.
type WriteScope struct {
	LearnerID string
	IfMatch   *int64
}

// UpdateResult reports whether a mutation found its target and the tree
// version after it.
type UpdateResult struct {
	Updated bool  `json:"updated"`
	Version int64 `json:"version"`
}

type ProgressView struct {
	Lessons []*domain.Lesson `json:"lessons"`
	Version int64            `json:"version"`
}

// ExportDocument is the portable form of one learner's progress.
type ExportDocument struct {
	Lessons      []*domain.Lesson   `json:"lessons"`
	ExerciseData map[string]*string `json:"exerciseData"`
	Version      int64              `json:"version"`
	ExportedAt   time.Time          `json:"exportedAt"`
}

// ProgressService owns each learner's progress tree.
type ProgressService interface {
	GetProgress(ctx context.Context, learnerID string) (*ProgressView, error)
	UpdateSubLessonStatus(ctx context.Context, w WriteScope, lessonID int, subLessonID string, completed bool) (UpdateResult, error)
	UpdateExerciseAnswer(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID string, answer domain.Answer) (UpdateResult, error)
	UpdateFollowUpAnswer(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID, followUp string) (UpdateResult, error)
	UpdateStepAnswer(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID, stepID string, answer domain.Answer) (UpdateResult, error)
	ToggleCheckboxOption(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID, option string, checked bool) (UpdateResult, error)
	GetOverallProgress(ctx context.Context, learnerID string) (domain.Progress, error)
	GetLessonProgress(ctx context.Context, learnerID string, lessonID int) (domain.LessonProgress, bool, error)
	ExportData(ctx context.Context, learnerID string) (*ExportDocument, error)
	ImportData(ctx context.Context, w WriteScope, raw []byte) (UpdateResult, error)
	ClearAll(ctx context.Context, w WriteScope) (UpdateResult, error)

	SaveExerciseData(ctx context.Context, learnerID, key, value string) error
	LoadExerciseData(ctx context.Context, learnerID, key string) (string, bool, error)
	DeleteExerciseData(ctx context.Context, learnerID, key string) error
}

type learnerTree struct {
	mu      sync.Mutex
	loaded  bool
	lessons []*domain.Lesson
	version int64
}

type progressService struct {
	course      CourseSource
	persistence ProgressPersistence
	now         func() time.Time

	mu       sync.Mutex
	learners map[string]*learnerTree
}

func NewProgressService(course CourseSource, persistence ProgressPersistence) ProgressService {
	return &progressService{
		course:      course,
		persistence: persistence,
		now:         func() time.Time { return time.Now().UTC() },
		learners:    make(map[string]*learnerTree),
	}
}

// tree returns the learner's tree locked and hydrated. Callers must unlock it.
func (s *progressService) tree(ctx context.Context, learnerID string) *learnerTree {
	s.mu.Lock()
	t, ok := s.learners[learnerID]
	if !ok {
		t = &learnerTree{}
		s.learners[learnerID] = t
	}
	s.mu.Unlock()

	t.mu.Lock()
	if !t.loaded {
		if rec, ok := s.persistence.Load(ctx, learnerID); ok {
			t.lessons, t.version = rec.Lessons, rec.Version
		} else {
			t.lessons, t.version = s.course.Lessons(), 0
		}
		t.loaded = true
		logger.Get().Debug("Hydrated progress tree", zap.String("learner", learnerID), zap.Int64("version", t.version))
	}
	return t
}

func checkVersion(w WriteScope, t *learnerTree) error {
	if w.IfMatch != nil && *w.IfMatch != t.version {
		return domain.NewVersionConflictError(*w.IfMatch, t.version)
	}
	return nil
}

// mutate applies fn under the learner lock. A miss leaves version and storage untouched.
func (s *progressService) mutate(ctx context.Context, w WriteScope, fn func([]*domain.Lesson) ([]*domain.Lesson, bool)) (UpdateResult, error) {
	t := s.tree(ctx, w.LearnerID)
	defer t.mu.Unlock()

	if err := checkVersion(w, t); err != nil {
		return UpdateResult{Version: t.version}, err
	}
	next, ok := fn(t.lessons)
	if !ok {
		return UpdateResult{Updated: false, Version: t.version}, nil
	}
	t.lessons = next
	t.version++
	s.persistence.Save(ctx, w.LearnerID, ProgressRecord{Lessons: t.lessons, Version: t.version})
	return UpdateResult{Updated: true, Version: t.version}, nil
}

func (s *progressService) GetProgress(ctx context.Context, learnerID string) (*ProgressView, error) {
	t := s.tree(ctx, learnerID)
	defer t.mu.Unlock()
	return &ProgressView{Lessons: t.lessons, Version: t.version}, nil
}

func (s *progressService) UpdateSubLessonStatus(ctx context.Context, w WriteScope, lessonID int, subLessonID string, completed bool) (UpdateResult, error) {
	return s.mutate(ctx, w, func(l []*domain.Lesson) ([]*domain.Lesson, bool) {
		return domain.WithSubLessonStatus(l, lessonID, subLessonID, completed)
	})
}

func (s *progressService) UpdateExerciseAnswer(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID string, answer domain.Answer) (UpdateResult, error) {
	return s.mutate(ctx, w, func(l []*domain.Lesson) ([]*domain.Lesson, bool) {
		return domain.WithExerciseAnswer(l, lessonID, subLessonID, exerciseID, answer)
	})
}

func (s *progressService) UpdateFollowUpAnswer(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID, followUp string) (UpdateResult, error) {
	return s.mutate(ctx, w, func(l []*domain.Lesson) ([]*domain.Lesson, bool) {
		return domain.WithFollowUpAnswer(l, lessonID, subLessonID, exerciseID, followUp)
	})
}

func (s *progressService) UpdateStepAnswer(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID, stepID string, answer domain.Answer) (UpdateResult, error) {
	return s.mutate(ctx, w, func(l []*domain.Lesson) ([]*domain.Lesson, bool) {
		return domain.WithStepAnswer(l, lessonID, subLessonID, exerciseID, stepID, answer)
	})
}

func (s *progressService) ToggleCheckboxOption(ctx context.Context, w WriteScope, lessonID int, subLessonID, exerciseID, option string, checked bool) (UpdateResult, error) {
	return s.mutate(ctx, w, func(l []*domain.Lesson) ([]*domain.Lesson, bool) {
		return domain.WithToggledOption(l, lessonID, subLessonID, exerciseID, option, checked)
	})
}

func (s *progressService) GetOverallProgress(ctx context.Context, learnerID string) (domain.Progress, error) {
	t := s.tree(ctx, learnerID)
	defer t.mu.Unlock()
	return domain.CalculateProgress(t.lessons), nil
}

func (s *progressService) GetLessonProgress(ctx context.Context, learnerID string, lessonID int) (domain.LessonProgress, bool, error) {
	t := s.tree(ctx, learnerID)
	defer t.mu.Unlock()
	p, ok := domain.CalculateLessonProgress(t.lessons, lessonID)
	return p, ok, nil
}

func (s *progressService) ExportData(ctx context.Context, learnerID string) (*ExportDocument, error) {
	t := s.tree(ctx, learnerID)
	lessons, version := t.lessons, t.version
	t.mu.Unlock()

	aux, err := s.persistence.ExportAux(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return &ExportDocument{
		Lessons:      lessons,
		ExerciseData: aux,
		Version:      version,
		ExportedAt:   s.now(),
	}, nil
}

type importDocument struct {
	Lessons      json.RawMessage            `json:"lessons"`
	ExerciseData map[string]json.RawMessage `json:"exerciseData"`
}

// parseImport validates the whole document before anything is touched.
func parseImport(raw []byte) ([]*domain.Lesson, map[string]*string, error) {
	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, domain.NewInvalidImportError(err)
	}
	trimmed := bytes.TrimSpace(doc.Lessons)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil, domain.NewInvalidImportError(fmt.Errorf("lessons must be an array"))
	}
	var lessons []*domain.Lesson
	if err := json.Unmarshal(trimmed, &lessons); err != nil {
		return nil, nil, domain.NewInvalidImportError(err)
	}
	if err := domain.ValidateCourse(lessons); err != nil {
		return nil, nil, domain.NewInvalidImportError(err)
	}

	aux := make(map[string]*string, len(doc.ExerciseData))
	for key, value := range doc.ExerciseData {
		v := bytes.TrimSpace(value)
		switch {
		case len(v) == 0 || bytes.Equal(v, []byte("null")):
			aux[key] = nil
		case v[0] == '"':
			var str string
			if err := json.Unmarshal(v, &str); err != nil {
				return nil, nil, domain.NewInvalidImportError(err)
			}
			aux[key] = &str
		default:
			// Structured values are stored as their raw JSON text.
			str := string(v)
			aux[key] = &str
		}
	}
	return lessons, aux, nil
}

func (s *progressService) ImportData(ctx context.Context, w WriteScope, raw []byte) (UpdateResult, error) {
	lessons, aux, err := parseImport(raw)
	if err != nil {
		logger.Get().Warn("Rejected progress import", zap.String("learner", w.LearnerID), zap.Error(err))
		return UpdateResult{}, err
	}

	t := s.tree(ctx, w.LearnerID)
	defer t.mu.Unlock()
	if err := checkVersion(w, t); err != nil {
		return UpdateResult{Version: t.version}, err
	}

	t.lessons = lessons
	t.version++
	s.persistence.Save(ctx, w.LearnerID, ProgressRecord{Lessons: t.lessons, Version: t.version})
	if err := s.persistence.ImportAux(ctx, w.LearnerID, aux); err != nil {
		return UpdateResult{Updated: true, Version: t.version}, err
	}
	logger.Get().Info("Imported progress", zap.String("learner", w.LearnerID), zap.Int("lessons", len(lessons)))
	return UpdateResult{Updated: true, Version: t.version}, nil
}

func (s *progressService) ClearAll(ctx context.Context, w WriteScope) (UpdateResult, error) {
	t := s.tree(ctx, w.LearnerID)
	defer t.mu.Unlock()
	if err := checkVersion(w, t); err != nil {
		return UpdateResult{Version: t.version}, err
	}

	t.lessons = s.course.Lessons()
	t.version++
	if err := s.persistence.Clear(ctx, w.LearnerID); err != nil {
		return UpdateResult{Updated: true, Version: t.version}, domain.NewInternalError("failed to clear stored progress", err)
	}
	return UpdateResult{Updated: true, Version: t.version}, nil
}

func (s *progressService) SaveExerciseData(ctx context.Context, learnerID, key, value string) error {
	return s.persistence.SaveAux(ctx, learnerID, key, value)
}

func (s *progressService) LoadExerciseData(ctx context.Context, learnerID, key string) (string, bool, error) {
	return s.persistence.LoadAux(ctx, learnerID, key)
}

func (s *progressService) DeleteExerciseData(ctx context.Context, learnerID, key string) error {
	return s.persistence.DeleteAux(ctx, learnerID, key)
}
