package intent

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"tinybot/app/config"

	"github.com/elliotchance/pie/v2"
	"github.com/go-playground/validator/v10"
	"github.com/samber/do"
	"github.com/samber/oops"
)

type Service struct {
	path     string
	validate *validator.Validate

	mu   sync.RWMutex
	data Collection
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewWithPath(cfg.Storage.IntentsPath), nil
}

// NewWithPath creates an empty store backed by path. Call Load before use.
func NewWithPath(path string) *Service {
	return &Service{
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) Path() string {
	return s.path
}

// Load reads the intents file, creating it with the default collection when
// it does not exist. On a *StorageError the in-memory collection is unchanged.
func (s *Service) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.mu.Lock()
		s.data = Defaults()
		s.mu.Unlock()

		slog.Info("Intents file not found, writing defaults", "path", s.path)

		return s.Save()
	}
	if err != nil {
		return &StorageError{
			Op:   "read",
			Path: s.path,
			Err:  oops.In("intent").With("path", s.path).Wrapf(err, "failed to read intents file"),
		}
	}

	var loaded Collection
	if err = json.Unmarshal(data, &loaded); err != nil {
		return &StorageError{
			Op:   "parse",
			Path: s.path,
			Err:  oops.In("intent").With("path", s.path).Wrapf(err, "failed to parse intents file"),
		}
	}

	for i := range loaded.Intents {
		if err = s.validate.Struct(loaded.Intents[i]); err != nil {
			return &StorageError{
				Op:   "parse",
				Path: s.path,
				Err:  oops.In("intent").With("path", s.path).With("index", i).Wrapf(err, "invalid intent"),
			}
		}
	}

	s.mu.Lock()
	s.data = loaded
	s.mu.Unlock()

	slog.Debug("Loaded intents", "path", s.path, "count", len(loaded.Intents))

	return nil
}

// UseDefaults replaces the in-memory collection without touching the file.
func (s *Service) UseDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = Defaults()
}

// Save overwrites the intents file with the whole collection.
func (s *Service) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &StorageError{
			Op:   "write",
			Path: s.path,
			Err:  oops.In("intent").With("path", s.path).Wrapf(err, "failed to create intents directory"),
		}
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &StorageError{
			Op:   "write",
			Path: s.path,
			Err:  oops.In("intent").With("path", s.path).Wrapf(err, "failed to create/open intents file"),
		}
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err = encoder.Encode(s.data); err != nil {
		return &StorageError{
			Op:   "write",
			Path: s.path,
			Err:  oops.In("intent").With("path", s.path).Wrapf(err, "failed to encode intents"),
		}
	}

	if err = writer.Flush(); err != nil {
		return &StorageError{
			Op:   "write",
			Path: s.path,
			Err:  oops.In("intent").With("path", s.path).Wrapf(err, "failed to flush intents file"),
		}
	}

	return nil
}

// Add appends a new intent and persists the collection. Tags are not checked
// for uniqueness: an existing tag gets a second, independently matched entry.
func (s *Service) Add(tag string, keywords, responses []string) (Intent, error) {
	item := Intent{
		Tag:       tag,
		Keywords:  keywords,
		Responses: responses,
	}

	if err := s.validate.Struct(item); err != nil {
		return Intent{}, oops.In("intent").With("tag", tag).Wrapf(err, "invalid intent")
	}

	s.mu.Lock()
	prevLen := len(s.data.Intents)
	s.data.Intents = append(s.data.Intents, item)
	s.mu.Unlock()

	if err := s.Save(); err != nil {
		s.mu.Lock()
		s.data.Intents = s.data.Intents[:prevLen]
		s.mu.Unlock()

		return Intent{}, err
	}

	slog.Info("Added intent",
		"tag", tag,
		"keywords", keywords,
		"responses_count", len(responses),
	)

	return item, nil
}

// Intents returns a copy of the collection in definition order.
func (s *Service) Intents() []Intent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Intent, len(s.data.Intents))
	copy(result, s.data.Intents)

	return result
}

func (s *Service) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pie.Map(s.data.Intents, func(i Intent) string {
		return i.Tag
	})
}
