package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/view"
)

const replHelp = `Commands:
  name <text>              set the pending name
  amount <value>           set the pending amount
  kind <income|expense>    set the pending kind
  add                      add the pending entry
  income <amount> <name>   add an income entry
  expense <amount> <name>  add an expense entry
  rm <id>                  remove an entry
  ls                       show balance, form and entries
  balance                  show the balance
  export                   print entries as CSV
  clear                    reset the pending entry
  quit                     end the session
`

func newReplCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, opts)
		},
	}
}

func runRepl(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	stderr := cmd.ErrOrStderr()
	logger, err := logging.New(stderr, level, view.IsTerminal(stderr))
	if err != nil {
		return err
	}

	ids, err := id.New(cfg.Session.IDScheme)
	if err != nil {
		return err
	}

	store := ledger.NewStore(ledger.StoreOptions{IDs: ids, TimeLayout: cfg.Display.TimeLayout})
	sess := ledger.NewSession(store, cfg.Session.DefaultKind, logger)

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	r := &repl{
		sess:        sess,
		out:         out,
		interactive: view.IsTerminal(in),
		opts: view.Options{
			Currency: cfg.Display.Currency,
			Color:    colorEnabled(cfg.Display.Color, out),
		},
	}
	logger.Debug().Str("config", opts.configPath).Str("id_scheme", string(cfg.Session.IDScheme)).Msg("session started")
	return r.run(in)
}

func colorEnabled(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return view.IsTerminal(w)
	}
}

// repl reads one command per line and runs it against a session.
type repl struct {
	sess        *ledger.Session
	out         io.Writer
	opts        view.Options
	interactive bool
}

func (r *repl) run(in io.Reader) error {
	if r.interactive {
		if err := r.render(); err != nil {
			return err
		}
	}

	br := bufio.NewReaderSize(in, maxLineBytes)
	for {
		r.prompt()
		line, err := readLine(br)
		if errors.Is(err, errLineTooLong) {
			fmt.Fprintf(r.out, "error: %v\n", err)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		quit, err := r.exec(line)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// maxLineBytes bounds a single command line.
const maxLineBytes = 64 * 1024

var errLineTooLong = fmt.Errorf("line exceeds %d bytes", maxLineBytes)

// readLine returns the next line without its terminator. An over-long line is
// discarded up to its newline and reported as errLineTooLong.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = br.ReadSlice('\n')
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", errLineTooLong
	}
	if errors.Is(err, io.EOF) && len(line) > 0 {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

func (r *repl) prompt() {
	if r.interactive {
		fmt.Fprint(r.out, "> ")
	}
}

// exec runs a single command line and reports whether the session should end.
func (r *repl) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return false, nil
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help", "?":
		_, err := io.WriteString(r.out, replHelp)
		return false, err
	case "name", "amount", "kind":
		if err := r.sess.SetField(strings.ToLower(verb), rest); err != nil {
			return false, err
		}
		return false, r.renderForm()
	case "clear":
		r.sess.ClearForm()
		return false, r.renderForm()
	case "add":
		return false, r.submit()
	case "income", "expense":
		amount, name, _ := strings.Cut(rest, " ")
		r.sess.SetName(strings.TrimSpace(name))
		r.sess.SetAmount(amount)
		if err := r.sess.SetKind(verb); err != nil {
			return false, err
		}
		return false, r.submit()
	case "rm", "del":
		if rest == "" {
			return false, errors.New("usage: rm <id>")
		}
		r.sess.Remove(rest)
		return false, r.render()
	case "ls", "show":
		return false, r.render()
	case "balance":
		_, err := fmt.Fprintln(r.out, view.Balance(r.opts, r.sess.Store().BalanceString()))
		return false, err
	case "export":
		return false, ledger.WriteTransactions(r.out, r.sess.Store().List())
	default:
		return false, fmt.Errorf("unknown command %q (try help)", verb)
	}
}

// submit adds the pending entry. Validation failures surface only as the
// form's error cue.
func (r *repl) submit() error {
	_, err := r.sess.Submit()
	var verr ledger.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	return r.render()
}

func (r *repl) render() error {
	return view.Render(r.out, r.opts, r.sess.Snapshot())
}

func (r *repl) renderForm() error {
	v := r.sess.Snapshot()
	_, err := fmt.Fprintln(r.out, view.FormLine(v.Form, v.Errors))
	return err
}
