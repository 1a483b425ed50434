package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/chatdown"
	bt "github.com/fwojciec/chatdown/bubbletea"
	chatjson "github.com/fwojciec/chatdown/json"
	"github.com/google/uuid"
)

// chat runs the interactive TUI and saves the session on exit.
func chat(ctx context.Context, cfg chatdown.Config, sessionPath string, keys apiKeys) error {
	log, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	provider, name, err := resolveProvider(ctx, cfg.Provider, keys)
	if err != nil {
		return err
	}

	session, err := loadOrCreateSession(sessionPath, cfg.SystemPrompt)
	if err != nil {
		return err
	}
	log.Info("session started", "session", session.ID, "provider", name, "model", cfg.Model)

	c := chatdown.NewChat(provider)
	sendOpts := sendOptions(cfg)
	agentFn := func(ctx context.Context, s *chatdown.Session, onEvent func(chatdown.Event)) error {
		opts := append([]chatdown.SendOption{chatdown.WithEventHandler(onEvent)}, sendOpts...)
		err := c.Send(ctx, s, opts...)
		logTurn(log, s, err)
		return err
	}

	model := bt.New(agentFn, &session, cfg.Theme, bt.Config{
		Model: modelLabel(name, cfg.Model),
		Copy:  clipboard.WriteAll,
	})
	if err := bt.Run(ctx, model); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	// Save session on exit.
	if sessionPath != "" {
		if err := chatjson.Save(sessionPath, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	}
	if len(session.Messages) == 0 {
		return nil
	}
	dir, err := sessionDir(cfg)
	if err != nil {
		return err
	}
	savePath := filepath.Join(dir, session.ID+".json")
	if err := chatjson.Save(savePath, session); err != nil {
		return fmt.Errorf("auto-save session: %w", err)
	}
	log.Info("session saved", "session", session.ID, "path", savePath)
	fmt.Fprintf(os.Stderr, "Session saved to %s\n", savePath)
	return nil
}

func sendOptions(cfg chatdown.Config) []chatdown.SendOption {
	var opts []chatdown.SendOption
	if cfg.Model != "" {
		opts = append(opts, chatdown.WithModel(cfg.Model))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, chatdown.WithMaxTokens(cfg.MaxTokens))
	}
	if cfg.Temperature != nil {
		opts = append(opts, chatdown.WithTemperature(*cfg.Temperature))
	}
	return opts
}

// modelLabel is the status line label: the model if set, else the provider.
func modelLabel(provider, model string) string {
	if model != "" {
		return model
	}
	return provider
}

func logTurn(log *slog.Logger, s *chatdown.Session, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("turn failed", "session", s.ID, "error", err)
	}
	if len(s.Messages) == 0 {
		return
	}
	if m, ok := s.Messages[len(s.Messages)-1].(chatdown.AssistantMessage); ok {
		log.Info("turn",
			"session", s.ID,
			"stop_reason", string(m.StopReason),
			"raw_stop_reason", m.RawStopReason,
			"input_tokens", m.Usage.InputTokens,
			"output_tokens", m.Usage.OutputTokens,
		)
	}
}

func loadOrCreateSession(path, systemPrompt string) (chatdown.Session, error) {
	if path != "" {
		s, err := chatjson.Load(path)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return chatdown.Session{}, fmt.Errorf("load session: %w", err)
		}
		// A new session saved to path on exit.
	}
	now := time.Now()
	return chatdown.Session{
		ID:           uuid.NewString(),
		SystemPrompt: systemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func sessionDir(cfg chatdown.Config) (string, error) {
	if cfg.SessionDir != "" {
		return cfg.SessionDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".chatdown", "sessions"), nil
}

// openLog opens ~/.chatdown/chatdown.log. Stdout belongs to the TUI, so the
// interactive mode logs to a file.
func openLog() (*slog.Logger, func() error, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("locate home directory: %w", err)
	}
	dir := filepath.Join(home, ".chatdown")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "chatdown.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), f.Close, nil
}
