// Command chatdown chats with an LLM in the terminal and renders its
// markdown-subset replies as they stream in.
//
// Usage:
//
//	ANTHROPIC_API_KEY=sk-... chatdown [flags]
//	GEMINI_API_KEY=gk-...   chatdown [flags]
//	chatdown -render 'replies/**/*.txt'
//	chatdown -watch reply.txt
//	chatdown -serve [-addr :8080]
//	chatdown -export html -session ~/.chatdown/sessions/<id>.json
//
// Flags:
//
//	-config string        Path to config file (default: ~/.chatdown/config.toml)
//	-provider string      Provider: anthropic, gemini (auto-detected from env vars if omitted)
//	-model string         Model ID (default: provider default)
//	-session string       Path to session file to resume or export
//	-system-prompt string Path to system prompt file
//	-api-key string       API key (overrides provider's env var)
//	-render string        Render files matching a glob to stdout and exit
//	-watch string         Re-render a file to stdout each time it changes
//	-serve                Run the HTTP render service
//	-addr string          Listen address for -serve (default from config)
//	-export string        Write the -session transcript to stdout: html, md
//	-width int            Render width (default: terminal width, else 80)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/chatdown/fsnotify"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chatdown: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath string
	provider   string
	model      string
	session    string
	promptPath string
	apiKey     string
	render     string
	watch      string
	serve      bool
	addr       string
	export     string
	width      int
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("chatdown", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to config file (default: ~/.chatdown/config.toml)")
	fs.StringVar(&opts.provider, "provider", "", "Provider: anthropic, gemini (auto-detected from env vars if omitted)")
	fs.StringVar(&opts.model, "model", "", "Model ID (provider-specific)")
	fs.StringVar(&opts.session, "session", "", "Path to session file to resume or export")
	fs.StringVar(&opts.promptPath, "system-prompt", "", "Path to system prompt file")
	fs.StringVar(&opts.apiKey, "api-key", "", "API key (overrides provider's env var)")
	fs.StringVar(&opts.render, "render", "", "Render files matching a glob to stdout and exit")
	fs.StringVar(&opts.watch, "watch", "", "Re-render a file to stdout each time it changes")
	fs.BoolVar(&opts.serve, "serve", false, "Run the HTTP render service")
	fs.StringVar(&opts.addr, "addr", "", "Listen address for -serve (default from config)")
	fs.StringVar(&opts.export, "export", "", "Write the -session transcript to stdout: html, md")
	fs.IntVar(&opts.width, "width", 0, "Render width (default: terminal width, else 80)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.width < 0 {
		return options{}, fmt.Errorf("-width must be non-negative, got %d", opts.width)
	}
	if opts.export != "" && opts.session == "" {
		return options{}, errors.New("-export requires -session")
	}
	return opts, nil
}

func run() error {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg = applyEnv(cfg, os.Getenv)
	cfg, err = applyFlags(cfg, opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := renderOptions{
		width: opts.width,
		color: term.IsTerminal(int(os.Stdout.Fd())),
		theme: cfg.Theme,
	}
	if out.width == 0 && out.color {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			out.width = w
		}
	}

	switch {
	case opts.render != "":
		return renderFiles(os.Stdout, opts.render, out)
	case opts.watch != "":
		log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		return watchFile(ctx, os.Stdout, opts.watch, fsnotify.NewWatcher(log), out)
	case opts.serve:
		log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		return serve(ctx, cfg.Server.Addr, log)
	case opts.export != "":
		return exportSession(os.Stdout, opts.session, opts.export)
	}

	// Env vars are read here and passed as values.
	keys := apiKeys{
		flag:      opts.apiKey,
		anthropic: os.Getenv("ANTHROPIC_API_KEY"),
		gemini:    os.Getenv("GEMINI_API_KEY"),
	}
	return chat(ctx, cfg, opts.session, keys)
}
