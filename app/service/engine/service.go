package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"tinybot/app/client/console"
	"tinybot/app/config"
	"tinybot/app/service/history"
	"tinybot/app/service/intent"
	"tinybot/app/service/matcher"
	"tinybot/app/service/trainer"

	"github.com/samber/do"
)

const (
	cmdHelp    = "/help"
	cmdHistory = "/history"
	cmdIntents = "/intents"
	cmdTrain   = "/train"
	cmdExit    = "/exit"

	banner   = "Tiny Chatbot 🤖 — type /help for commands. Ctrl+C or /exit to quit."
	prompt   = "> "
	farewell = "Bye!"
	noMatch  = "I didn't catch that. Try /help or /train me."
	helpFormat = "Commands:\n" +
		"  /help    - show this help\n" +
		"  /history - last %d lines\n" +
		"  /intents - list intent tags\n" +
		"  /train   - add a new intent\n" +
		"  /exit    - quit"
)

type Service struct {
	intentSvc    *intent.Service
	matcher      *matcher.Matcher
	historySvc   *history.Service
	console      *console.Client
	historyLines int

	wizard *trainer.Wizard
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(
		do.MustInvoke[*intent.Service](di),
		do.MustInvoke[*matcher.Matcher](di),
		do.MustInvoke[*history.Service](di),
		do.MustInvoke[*console.Client](di),
		cfg.Chat.HistoryLines,
	), nil
}

func NewService(
	intentSvc *intent.Service,
	m *matcher.Matcher,
	historySvc *history.Service,
	consoleClient *console.Client,
	historyLines int,
) *Service {
	return &Service{
		intentSvc:    intentSvc,
		matcher:      m,
		historySvc:   historySvc,
		console:      consoleClient,
		historyLines: historyLines,
	}
}

// Run serves the console until /exit, end of input or ctx cancellation.
func (s *Service) Run(ctx context.Context) {
	s.loadIntents()

	s.console.Start()
	s.console.Print(banner)

	for {
		s.console.Prompt(s.prompt())

		select {
		case <-ctx.Done():
			s.console.Print("\n" + farewell)
			return
		case line, ok := <-s.console.Lines():
			if !ok {
				s.console.Print("\n" + farewell)
				return
			}

			reply, exit := s.Handle(line)
			if reply != "" {
				s.console.Print(reply)
			}
			if exit {
				return
			}
		}
	}
}

func (s *Service) loadIntents() {
	err := s.intentSvc.Load()
	if err == nil {
		return
	}

	var storageErr *intent.StorageError
	if errors.As(err, &storageErr) && storageErr.Op != "write" {
		slog.Error("Failed to load intents, using defaults", "path", storageErr.Path, "error", err)
		s.intentSvc.UseDefaults()
		s.console.Print(fmt.Sprintf("Warning: could not load %s, using default intents.", storageErr.Path))
		return
	}

	slog.Error("Failed to write default intents", "error", err)
	s.console.Print(fmt.Sprintf("Warning: could not save intents: %v", err))
}

func (s *Service) prompt() string {
	if s.wizard != nil {
		return s.wizard.Prompt()
	}

	return prompt
}

// Handle processes one input line and returns the text to show. The second
// result is true when the session should end.
func (s *Service) Handle(line string) (string, bool) {
	if s.wizard != nil {
		return s.feedWizard(line), false
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	var reply string

	switch line {
	case cmdExit:
		return farewell, true
	case cmdHelp:
		reply = s.helpText()
	case cmdHistory:
		reply = s.history()
	case cmdIntents:
		reply = "Intents: " + strings.Join(s.intentSvc.Tags(), ", ")
	case cmdTrain:
		s.wizard = trainer.New()
		return trainer.Banner, false
	default:
		reply = s.reply(line)
	}

	s.record(line, reply)

	return reply, false
}

// Training reports whether the /train wizard is waiting for an answer.
func (s *Service) Training() bool {
	return s.wizard != nil
}

func (s *Service) feedWizard(line string) string {
	result, done := s.wizard.Feed(line)
	if !done {
		return ""
	}
	s.wizard = nil

	var reply string

	if result.Cancelled {
		reply = "Cancelled."
	} else if _, err := s.intentSvc.Add(result.Tag, result.Keywords, result.Responses); err != nil {
		slog.Error("Failed to add intent", "tag", result.Tag, "error", err)
		reply = fmt.Sprintf("Could not save '%s': %v", result.Tag, err)
	} else {
		reply = fmt.Sprintf("Added '%s'.", result.Tag)
	}

	s.record(cmdTrain, reply)

	return reply
}

func (s *Service) reply(line string) string {
	best, score := matcher.Best(line, s.intentSvc.Intents())
	if best == nil {
		slog.Debug("No intent matched", "text", line)
		return noMatch
	}

	slog.Debug("Matched intent", "tag", best.Tag, "score", score)

	return s.matcher.Respond(best)
}

func (s *Service) helpText() string {
	return fmt.Sprintf(helpFormat, s.historyLines)
}

func (s *Service) history() string {
	text, err := s.historySvc.Tail(s.historyLines)
	if err != nil {
		slog.Error("Failed to read history", "error", err)
		return "Could not read history."
	}

	return text
}

func (s *Service) record(user, bot string) {
	if err := s.historySvc.Append(user, bot); err != nil {
		slog.Error("Failed to write history", "error", err)
	}
}
