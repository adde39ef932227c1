package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"tinybot/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	emptyReply = "No history yet."
)

type Service struct {
	path string
	now  func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewWithClock(cfg.Storage.HistoryPath, time.Now), nil
}

func NewWithClock(path string, now func() time.Time) *Service {
	return &Service{
		path: path,
		now:  now,
	}
}

// Append writes one USER/BOT pair to the end of the log.
func (s *Service) Append(user, bot string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return oops.In("history").With("path", s.path).Wrapf(err, "failed to create history directory")
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return oops.In("history").With("path", s.path).Wrapf(err, "failed to open history file")
	}
	defer file.Close()

	ts := formatTime(s.now())

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[%s] USER: %s\n", ts, user))
	builder.WriteString(fmt.Sprintf("[%s] BOT : %s\n", ts, bot))

	if _, err = file.WriteString(builder.String()); err != nil {
		return oops.In("history").With("path", s.path).Wrapf(err, "failed to write history")
	}

	return nil
}

// Tail returns the last n lines of the log, or a placeholder when the log
// is missing or empty.
func (s *Service) Tail(n int) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyReply, nil
	}
	if err != nil {
		return "", oops.In("history").With("path", s.path).Wrapf(err, "failed to read history file")
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return emptyReply, nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return strings.Join(lines, "\n"), nil
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}
