package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/crossfill/archive"
	"github.com/domino14/crossfill/automatic"
	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/grid"
	"github.com/domino14/crossfill/lexicon"
	"github.com/domino14/crossfill/render"
	"github.com/domino14/crossfill/solver"
)

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) Has(key string) bool {
	_, ok := c[key]
	return ok
}

func (c CmdOptions) Int(key string) (int, error) {
	v, ok := c[key]
	if !ok {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) Uint64Default(key string, defaultU uint64) (uint64, error) {
	v, ok := c[key]
	if !ok {
		return defaultU, nil
	}
	return strconv.ParseUint(v, 10, 64)
}

func (c CmdOptions) Bool(key string) bool {
	return strings.ToLower(c[key]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) filling() bool {
	return automatic.IsFilling.Value() > 0
}

func (sc *ShellController) openArchive() error {
	if sc.store != nil {
		return nil
	}
	path := sc.cfg.GetString(config.ConfigArchivePath)
	if path == "" {
		return nil
	}
	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	sc.store = store
	return nil
}

func (sc *ShellController) archiveFill(fill solver.Assignment, m solver.Metrics, seed uint64) error {
	if err := sc.openArchive(); err != nil {
		return err
	}
	if sc.store == nil {
		return nil
	}
	return sc.store.Save(context.Background(), &archive.Fill{
		Structure:  strings.Join(sc.g.Description(), "\n"),
		Lexicon:    sc.lex.Name(),
		LexiconFP:  sc.lex.FingerprintHex(),
		Seed:       seed,
		Solution:   render.Text(sc.g, fill),
		Nodes:      m.Nodes,
		Backtracks: m.Backtracks,
		Duration:   m.Elapsed,
	})
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need the path of a structure file")
	}
	if sc.filling() {
		return nil, errFillInProgress
	}
	g, err := grid.Load(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.g = g
	sc.structName = filepath.Base(cmd.args[0])
	sc.lastFill = nil
	sc.lastMetrics = solver.Metrics{}
	return msg(fmt.Sprintf("%s: %dx%d, %d slots\n%s",
		sc.structName, g.Height(), g.Width(), len(g.Slots()),
		render.Text(g, nil))), nil
}

func (sc *ShellController) words(cmd *shellcmd) (*Response, error) {
	if sc.filling() {
		return nil, errFillInProgress
	}
	path := sc.cfg.WordListPath()
	if cmd.args != nil {
		path = cmd.args[0]
	}
	var (
		lex *lexicon.Lexicon
		err error
	)
	switch {
	case cmd.options.Has("encoding"):
		// encoded lists bypass the cache; the cache loader only knows
		// how to read utf-8
		lex, err = lexicon.LoadFile(path, cmd.options.String("encoding"))
	case cmd.options.Bool("reload"):
		lex, err = lexicon.Reload(sc.cfg, path)
	default:
		lex, err = lexicon.Get(sc.cfg, path)
	}
	if err != nil {
		return nil, err
	}
	sc.lex = lex
	sc.lastFill = nil
	sc.lastMetrics = solver.Metrics{}
	return msg(fmt.Sprintf("%s: %d words, fingerprint %s",
		lex.Name(), lex.Size(), lex.FingerprintHex())), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.g == nil {
		return nil, errNothingLoaded
	}
	out := render.Text(sc.g, sc.lastFill)
	if sc.lastFill != nil {
		out += fmt.Sprintf("%d nodes, %d backtracks in %v",
			sc.lastMetrics.Nodes, sc.lastMetrics.Backtracks, sc.lastMetrics.Elapsed)
	}
	return msg(out), nil
}

func (sc *ShellController) slots(cmd *shellcmd) (*Response, error) {
	if sc.g == nil {
		return nil, errNothingLoaded
	}
	numbering := sc.g.Numbering()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-8s %4s %8s %8s\n", "slot", "start", "len", "crosses", "words")
	for _, slot := range sc.g.Slots() {
		words := "-"
		if sc.lex != nil {
			words = strconv.Itoa(len(sc.lex.OfLength(slot.Len)))
		}
		fmt.Fprintf(&sb, "%-6s %-8s %4d %8d %8s\n",
			strconv.Itoa(numbering[slot])+slot.Dir.Short(),
			fmt.Sprintf("(%d,%d)", slot.Row, slot.Col),
			slot.Len, len(sc.g.Neighbors(slot)), words)
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.filling() {
		return nil, errFillInProgress
	}
	// positional args load structure and words in one step, so
	// `crossfill "solve steps.txt words.txt fill.png"` works one-shot
	pngfile := cmd.options.String("png")
	if cmd.args != nil {
		if len(cmd.args) < 2 {
			return nil, errors.New("usage: solve [structure words [output.png]]")
		}
		if _, err := sc.load(&shellcmd{cmd: "load", args: cmd.args[:1]}); err != nil {
			return nil, err
		}
		if _, err := sc.words(&shellcmd{cmd: "words", args: cmd.args[1:2], options: cmd.options}); err != nil {
			return nil, err
		}
		if len(cmd.args) > 2 {
			pngfile = cmd.args[2]
		}
	}
	if sc.g == nil {
		return nil, errNothingLoaded
	}
	if sc.lex == nil {
		return nil, errNoWordList
	}
	threads, err := cmd.options.IntDefault("threads", sc.cfg.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	seed, err := cmd.options.Uint64Default("seed", sc.cfg.GetUint64(config.ConfigSeed))
	if err != nil {
		return nil, err
	}
	// a seed only means something when candidate order is shuffled, so
	// passing one turns shuffling on unless explicitly overridden
	randomize := sc.cfg.GetBool(config.ConfigRandomize) || cmd.options.Has("seed")
	if cmd.options.Has("randomize") {
		randomize = cmd.options.Bool("randomize")
	}

	s := solver.New(sc.g, sc.lex)
	s.SetThreads(threads)
	s.SetRandomize(randomize)
	s.SetSeed(seed)

	logfile := cmd.options.String("log")
	if logfile == "" {
		logfile = sc.cfg.GetString(config.ConfigSolveLog)
	}
	if logfile != "" {
		logf, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		defer logf.Close()
		s.SetLogStream(logf)
	}

	fill, err := s.Solve(context.Background())
	m := s.Metrics()
	if err != nil {
		return nil, err
	}
	sc.lastFill = fill
	sc.lastMetrics = m
	if err := sc.archiveFill(fill, m, seed); err != nil {
		log.Err(err).Msg("archiving-fill")
	}

	out := render.Text(sc.g, fill)
	out += fmt.Sprintf("%d nodes, %d backtracks, %d words pruned in %v",
		m.Nodes, m.Backtracks, m.Pruned, m.Elapsed)
	if pngfile != "" {
		if err := render.SavePNG(sc.g, fill, pngfile); err != nil {
			return nil, err
		}
		out += "\nwrote " + pngfile
	}
	return msg(out), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if sc.lex == nil {
		return nil, errNoWordList
	}
	if cmd.args == nil {
		return nil, errors.New("need at least one word to check")
	}
	var sb strings.Builder
	for _, w := range cmd.args {
		w = strings.ToUpper(w)
		verdict := "INVALID in"
		if sc.lex.Has(w) {
			verdict = "valid in"
		}
		fmt.Fprintf(&sb, "%s is %s %s\n", w, verdict, sc.lex.Name())
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.g == nil {
		return nil, errNothingLoaded
	}
	if cmd.args == nil {
		return nil, errors.New("need an output filename, for example `export fill.png`")
	}
	path := cmd.args[0]
	if err := render.SavePNG(sc.g, sc.lastFill, path); err != nil {
		return nil, err
	}
	return msg("wrote " + path), nil
}

func (sc *ShellController) autofill(cmd *shellcmd) (*Response, error) {
	if cmd.args != nil && cmd.args[0] == "stop" {
		if !sc.filling() || sc.batchCancel == nil {
			return nil, errors.New("no batch is running")
		}
		sc.batchCancel()
		return msg("stopping the batch; stats will follow"), nil
	}
	if sc.g == nil {
		return nil, errNothingLoaded
	}
	if sc.lex == nil {
		return nil, errNoWordList
	}
	if sc.filling() {
		return nil, errFillInProgress
	}
	if cmd.args == nil {
		return nil, errors.New("need the number of fills, for example `autofill 100`")
	}
	numFills, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.cfg.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	logfile := cmd.options.String("log")
	var seeds []uint64
	if sf := cmd.options.String("seedfile"); sf != "" {
		if seeds, err = automatic.LoadSeeds(sf); err != nil {
			return nil, err
		}
		numFills = len(seeds)
	}
	if err := sc.openArchive(); err != nil {
		return nil, err
	}
	sc.batchCtx, sc.batchCancel = context.WithCancel(context.Background())
	go func() {
		stats, err := automatic.RunBatch(sc.batchCtx, sc.cfg, sc.g, sc.lex,
			sc.store, numFills, threads, logfile, seeds)
		if err != nil {
			sc.showError(err)
			return
		}
		sc.showMessage(stats.Display())
	}()
	return msg(fmt.Sprintf("starting %d fills on %d threads", numFills, threads)), nil
}

func (sc *ShellController) seeds(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need the number of seeds to generate")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	seeds := automatic.GenerateSeeds(n)
	if out := cmd.options.String("file"); out != "" {
		if err := automatic.SaveSeeds(seeds, out); err != nil {
			return nil, err
		}
		return msg(fmt.Sprintf("wrote %d seeds to %s", n, out)), nil
	}
	var sb strings.Builder
	for _, s := range seeds {
		fmt.Fprintf(&sb, "%d\n", s)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) archiveList(cmd *shellcmd) (*Response, error) {
	if err := sc.openArchive(); err != nil {
		return nil, err
	}
	if sc.store == nil {
		return nil, errors.New("no archive configured; `set archive-path <file>` first")
	}
	n := 5
	if cmd.args != nil {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	ctx := context.Background()
	total, err := sc.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	fills, err := sc.store.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d archived fills\n", total)
	for _, f := range fills {
		fmt.Fprintf(&sb, "#%d  %s  %s  seed %d  %d nodes in %v\n%s\n",
			f.ID, f.CreatedAt.Format(time.RFC3339), f.Lexicon, f.Seed,
			f.Nodes, f.Duration, f.Solution)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		settings := sc.cfg.SanitizedSettings()
		keys := lo.Keys(settings)
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %v\n", k, settings[k])
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", key, sc.cfg.SanitizedSettings()[key])), nil
	}
	value := strings.Join(cmd.args[1:], " ")
	sc.cfg.Set(key, value)
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var buf bytes.Buffer
	if cmd.args == nil {
		usage(&buf, sc.execPath)
	} else {
		usageTopic(&buf, cmd.args[0], sc.execPath)
	}
	return msg(buf.String()), nil
}
