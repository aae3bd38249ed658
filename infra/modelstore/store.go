// Package modelstore loads trained gradient-boosted-tree artifacts from disk
// and exposes them through the predict.Model interface. Artifacts are plain
// JSON exported by the training pipeline, one file per track.
package modelstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pitlane-analytics/pitwall/core/logger"
	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/predict"
	infralogger "github.com/pitlane-analytics/pitwall/infra/logger"
)

// Store resolves and caches per-track model artifacts. Loaded models are
// immutable; the mutex only guards the cache map.
type Store struct {
	dir string
	log logger.Logger

	mu    sync.Mutex
	cache map[string]*Model
}

// New creates a Store reading artifacts from dir.
func New(dir string) *Store {
	return &Store{
		dir:   dir,
		log:   infralogger.New("modelstore"),
		cache: make(map[string]*Model),
	}
}

// Load returns the trained model for a track, reading the artifact on first
// use. A missing artifact fails with ModelUnavailableError.
func (s *Store) Load(trackName string) (predict.Model, error) {
	key := slug(trackName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.cache[key]; ok {
		return m, nil
	}

	path := filepath.Join(s.dir, "pitstop_model_"+key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &model.ModelUnavailableError{Track: trackName, Err: err}
		}
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if err := art.validate(); err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}

	m := &Model{art: art}
	s.cache[key] = m
	s.log.Infof("loaded model for %s (%d trees, %d features)", trackName, len(art.Trees), art.NumFeatures)
	return m, nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
