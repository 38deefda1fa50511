package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/archive"
	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/lexicon"
	"github.com/domino14/crossfill/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("badly formatted options (all options need a value)")
	errNothingLoaded     = errors.New("please load a structure first with the `load` command")
	errNoWordList        = errors.New("please load a word list first with the `words` command")
	errFillInProgress    = errors.New("a batch fill is running; stop it with `autofill stop` first")
)

type ShellController struct {
	l        *readline.Instance
	cfg      *config.Config
	execPath string

	g          *grid.Grid
	structName string
	lex        *lexicon.Lexicon

	lastFill    solver.Assignment
	lastMetrics solver.Metrics

	store *archive.Store

	batchCtx    context.Context
	batchCancel context.CancelFunc
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	lastWasOption := false
	lastOption := ""
	for _, field := range fields[1:] {
		if lastWasOption {
			options[lastOption] = field
			lastWasOption = false
			continue
		}
		if strings.HasPrefix(field, "-") {
			lastWasOption = true
			lastOption = strings.TrimPrefix(field, "-")
			continue
		}
		args = append(args, field)
	}
	if lastWasOption {
		// an option with no value at the end of the line
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := &ShellController{cfg: cfg, execPath: execPath}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcrossfill>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) executeCommand(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "load":
		return sc.load(cmd)
	case "words":
		return sc.words(cmd)
	case "show":
		return sc.show(cmd)
	case "slots":
		return sc.slots(cmd)
	case "solve":
		return sc.solve(cmd)
	case "check":
		return sc.check(cmd)
	case "export":
		return sc.export(cmd)
	case "autofill":
		return sc.autofill(cmd)
	case "seeds":
		return sc.seeds(cmd)
	case "archive":
		return sc.archiveList(cmd)
	case "set":
		return sc.set(cmd)
	case "help":
		return sc.help(cmd)
	default:
		return nil, errors.New("command not found: " + cmd.cmd)
	}
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	switch cmd.cmd {
	case "exit", "quit", "bye":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	}
	resp, err := sc.executeCommand(cmd)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {

		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		err = sc.standardModeSwitch(line, sig)
		if err != nil {
			log.Error().Err(err).Msg("")
			break
		}

	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command line and returns, for non-interactive
// invocations of the shell binary.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	defer sc.l.Close()
	err := sc.standardModeSwitch(line, sig)
	if err != nil {
		log.Error().Err(err).Msg("")
	}
}

// Cleanup stops any running batch and closes the archive.
func (sc *ShellController) Cleanup() {
	if sc.batchCancel != nil {
		sc.batchCancel()
	}
	if sc.store != nil {
		sc.store.Close()
	}
}
