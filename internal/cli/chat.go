package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eduguide/eduguide/internal/config"
	"github.com/eduguide/eduguide/internal/logger"
	"github.com/eduguide/eduguide/internal/provider"
	"github.com/eduguide/eduguide/internal/runner"
	"github.com/eduguide/eduguide/internal/slots"
	"github.com/eduguide/eduguide/internal/telemetry"
	"github.com/eduguide/eduguide/memory"
)

const (
	userPrompt = "\x1b[94mYou\x1b[0m: "
	aiPrompt   = "\x1b[93mAI\x1b[0m: "
)

// maxInputLine bounds a single input line; bufio's default 64KiB cap is too
// small for pasted text.
const maxInputLine = 1 << 20

// turnRunner is the slice of runner.Runner the chat loop needs.
type turnRunner interface {
	RunTurn(ctx context.Context, userText string, emit func(fragment string)) (string, error)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, closeLog, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		File:   cfg.Logging.File,
		Pretty: cfg.Logging.Pretty,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	// Basic env check (SDK also reads API key)
	if cfg.APIKey == "" && os.Getenv(cfg.KeyEnv()) == "" {
		return fmt.Errorf("missing API key: set %s or api_key in the config file", cfg.KeyEnv())
	}

	model, err := provider.New(provider.Options{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return err
	}

	store := memory.Open(cfg.MemoryFile, log)
	run := runner.New(store, slots.New(slots.DefaultRules()), model, log)
	log.Info().
		Str("provider", model.Name()).
		Str("session", store.Path()).
		Msg("assistant ready")

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		cancel()
	}()

	rep := &repl{in: os.Stdin, out: os.Stdout, errOut: os.Stderr, run: run, store: store}
	return rep.loop(ctx)
}

// repl drives one interactive session over a line-oriented input stream.
type repl struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	run    turnRunner
	store  *memory.Store
}

func (r *repl) loop(ctx context.Context) error {
	fmt.Fprintln(r.out, "🎓 Welcome to EduGuide Chatbot")
	fmt.Fprintln(r.out, "Ask me about study abroad: destinations, courses, scholarships, applications.")
	fmt.Fprintln(r.out, "Type 'exit' to quit, 'reset' to clear memory, 'summary' to review the session.")
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	// Pasted utterances can exceed the default 64KiB line cap.
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	for {
		fmt.Fprint(r.out, userPrompt)
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		case line, ok = <-inputCh:
			if !ok {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return scanner.Err()
			}
		}

		quit, err := r.handle(ctx, strings.TrimSpace(line))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// handle dispatches one input line. It returns quit=true when the session
// should end; a non-nil error ends the session abnormally.
func (r *repl) handle(ctx context.Context, line string) (quit bool, err error) {
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "exit":
		fmt.Fprintln(r.out, "Goodbye!")
		return true, nil
	case "reset":
		if err := r.store.Clear(); err != nil {
			return true, fmt.Errorf("clear session: %w", err)
		}
		telemetry.Emit("session_reset", nil)
		fmt.Fprintln(r.out, "✅ Memory cleared.")
		return false, nil
	case "summary":
		r.printSummary()
		return false, nil
	}

	fmt.Fprint(r.out, aiPrompt)
	_, err = r.run.RunTurn(ctx, line, func(fragment string) {
		fmt.Fprint(r.out, fragment)
	})
	fmt.Fprintln(r.out)
	if err != nil {
		if errors.Is(err, runner.ErrPersist) {
			return true, err
		}
		fmt.Fprintf(r.errOut, "error: %v\n", err)
	}
	return false, nil
}

func (r *repl) printSummary() {
	if r.store.Empty() {
		fmt.Fprintln(r.out, "No conversation yet.")
		return
	}
	fmt.Fprintln(r.out, "\n--- Session Summary ---")
	for _, t := range r.store.History() {
		fmt.Fprintf(r.out, "%s: %s\n", capitalize(t.Role), t.Content)
	}
	fmt.Fprintln(r.out, "-----------------------")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
