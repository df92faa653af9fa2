package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"class-companion/internal/cache"
	"class-companion/internal/domain"
	"class-companion/internal/logger"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressRecord is the persisted form of one learner's progress tree.
type ProgressRecord struct {
	Lessons []*domain.Lesson `json:"lessons"`
	Version int64            `json:"version"`
}

// ProgressPersistence stores progress trees and auxiliary exercise blobs.
// Tree writes are best effort: failures are logged and the in-memory tree
// stays authoritative.
type ProgressPersistence interface {
	Save(ctx context.Context, learnerID string, record ProgressRecord)
	Load(ctx context.Context, learnerID string) (ProgressRecord, bool)
	Clear(ctx context.Context, learnerID string) error

	SaveAux(ctx context.Context, learnerID, key, value string) error
	LoadAux(ctx context.Context, learnerID, key string) (string, bool, error)
	DeleteAux(ctx context.Context, learnerID, key string) error
	ExportAux(ctx context.Context, learnerID string) (map[string]*string, error)
	ImportAux(ctx context.Context, learnerID string, data map[string]*string) error
}

type progressPersistence struct {
	store  domain.Store
	prefix string
	// indexMu guards read-modify-write of aux indexes.
	indexMu sync.Mutex
}

func NewProgressPersistence(store domain.Store, keyPrefix string) ProgressPersistence {
	return &progressPersistence{store: store, prefix: keyPrefix}
}

func (p *progressPersistence) key(learnerID, name string) string {
	return cache.GenerateStoreKey(p.prefix, learnerID, name)
}

func (p *progressPersistence) Save(ctx context.Context, learnerID string, record ProgressRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		logger.Get().Error("Failed to encode progress", zap.String("learner", learnerID), zap.Error(err))
		return
	}
	if err := p.store.Set(ctx, p.key(learnerID, cache.CourseProgressKey), string(data)); err != nil {
		logger.Get().Error("Failed to save progress", zap.String("learner", learnerID), zap.Error(err))
	}
}

func (p *progressPersistence) Load(ctx context.Context, learnerID string) (ProgressRecord, bool) {
	l := logger.Get()
	raw, err := p.store.Get(ctx, p.key(learnerID, cache.CourseProgressKey))
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			l.Error("Failed to load progress", zap.String("learner", learnerID), zap.Error(err))
		}
		return ProgressRecord{}, false
	}

	var record ProgressRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		l.Warn("Stored progress is unreadable, starting fresh", zap.String("learner", learnerID), zap.Error(err))
		return ProgressRecord{}, false
	}
	if record.Lessons == nil {
		l.Warn("Stored progress has no lessons, starting fresh", zap.String("learner", learnerID))
		return ProgressRecord{}, false
	}
	if err := domain.ValidateCourse(record.Lessons); err != nil {
		l.Warn("Stored progress is malformed, starting fresh", zap.String("learner", learnerID), zap.Error(err))
		return ProgressRecord{}, false
	}
	return record, true
}

// Clear removes the progress tree, every allow-listed auxiliary key and every
// indexed composite blob. All deletions are attempted even if some fail.
func (p *progressPersistence) Clear(ctx context.Context, learnerID string) error {
	p.indexMu.Lock()
	defer p.indexMu.Unlock()

	index, err := p.readIndex(ctx, learnerID)
	if err != nil {
		logger.Get().Warn("Could not read aux index while clearing", zap.String("learner", learnerID), zap.Error(err))
	}

	names := append([]string{cache.CourseProgressKey}, domain.AuxiliaryKeys...)
	names = append(names, index...)
	names = append(names, cache.AuxIndexKey)

	var errs []error
	for _, name := range names {
		if err := p.store.Delete(ctx, p.key(learnerID, name)); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Get().Error("Failed to clear progress", zap.String("learner", learnerID), zap.Error(err))
		return err
	}
	return nil
}

// validateAuxName accepts allow-listed names and encoded composite keys.
// It reports whether the name is composite.
func validateAuxName(name string) (bool, error) {
	if domain.IsAuxiliaryKey(name) {
		return false, nil
	}
	if _, err := domain.ParseAuxKey(name); err != nil {
		return false, domain.NewInvalidInputError(fmt.Sprintf("unknown exercise data key %q", name)).
			WithContext("reason", err.Error())
	}
	return true, nil
}

func (p *progressPersistence) SaveAux(ctx context.Context, learnerID, key, value string) error {
	composite, err := validateAuxName(key)
	if err != nil {
		return err
	}
	if err := p.store.Set(ctx, p.key(learnerID, key), value); err != nil {
		return domain.NewInternalError("failed to save exercise data", err)
	}
	if composite {
		return p.updateIndex(ctx, learnerID, func(index map[string]struct{}) { index[key] = struct{}{} })
	}
	return nil
}

func (p *progressPersistence) LoadAux(ctx context.Context, learnerID, key string) (string, bool, error) {
	if _, err := validateAuxName(key); err != nil {
		return "", false, err
	}
	val, err := p.store.Get(ctx, p.key(learnerID, key))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, domain.NewInternalError("failed to load exercise data", err)
	}
	return val, true, nil
}

func (p *progressPersistence) DeleteAux(ctx context.Context, learnerID, key string) error {
	composite, err := validateAuxName(key)
	if err != nil {
		return err
	}
	if err := p.store.Delete(ctx, p.key(learnerID, key)); err != nil {
		return domain.NewInternalError("failed to delete exercise data", err)
	}
	if composite {
		return p.updateIndex(ctx, learnerID, func(index map[string]struct{}) { delete(index, key) })
	}
	return nil
}

// ExportAux reads every allow-listed key and every indexed composite key.
// Missing keys are reported as nil.
func (p *progressPersistence) ExportAux(ctx context.Context, learnerID string) (map[string]*string, error) {
	p.indexMu.Lock()
	index, err := p.readIndex(ctx, learnerID)
	p.indexMu.Unlock()
	if err != nil {
		return nil, domain.NewInternalError("failed to read exercise data index", err)
	}

	names := append(append([]string{}, domain.AuxiliaryKeys...), index...)
	values := make([]*string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, name := range names {
		g.Go(func() error {
			val, err := p.store.Get(gctx, p.key(learnerID, name))
			if err != nil {
				if errors.Is(err, domain.ErrKeyNotFound) {
					return nil
				}
				return fmt.Errorf("read %s: %w", name, err)
			}
			values[i] = &val
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to export exercise data", err)
	}

	out := make(map[string]*string, len(names))
	for i, name := range names {
		out[name] = values[i]
	}
	return out, nil
}

// ImportAux writes non-nil values and deletes keys whose value is nil.
// Keys that are neither allow-listed nor composite are skipped.
func (p *progressPersistence) ImportAux(ctx context.Context, learnerID string, data map[string]*string) error {
	l := logger.Get()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := validateAuxName(key); err != nil {
			l.Warn("Skipping unknown exercise data key on import", zap.String("learner", learnerID), zap.String("key", key))
			continue
		}
		var err error
		if value := data[key]; value != nil {
			err = p.SaveAux(ctx, learnerID, key, *value)
		} else {
			err = p.DeleteAux(ctx, learnerID, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *progressPersistence) readIndex(ctx context.Context, learnerID string) ([]string, error) {
	raw, err := p.store.Get(ctx, p.key(learnerID, cache.AuxIndexKey))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var index []string
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		return nil, fmt.Errorf("decode aux index: %w", err)
	}
	return index, nil
}

func (p *progressPersistence) updateIndex(ctx context.Context, learnerID string, fn func(map[string]struct{})) error {
	p.indexMu.Lock()
	defer p.indexMu.Unlock()

	current, err := p.readIndex(ctx, learnerID)
	if err != nil {
		logger.Get().Warn("Rebuilding unreadable aux index", zap.String("learner", learnerID), zap.Error(err))
		current = nil
	}
	set := make(map[string]struct{}, len(current)+1)
	for _, k := range current {
		set[k] = struct{}{}
	}
	fn(set)

	index := make([]string, 0, len(set))
	for k := range set {
		index = append(index, k)
	}
	sort.Strings(index)

	data, err := json.Marshal(index)
	if err != nil {
		return domain.NewInternalError("failed to encode exercise data index", err)
	}
	if err := p.store.Set(ctx, p.key(learnerID, cache.AuxIndexKey), string(data)); err != nil {
		return domain.NewInternalError("failed to save exercise data index", err)
	}
	return nil
}
