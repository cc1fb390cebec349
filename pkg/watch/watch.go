// Package watch formats JavaScript and TypeScript files as they are saved.
//
// Settings are fetched again for every event, so edits to the config file
// take effect without a restart. A file is formatted only while
// format_on_save is enabled.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gostarstyle/internal/logging"
	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
	"github.com/yaklabco/gostarstyle/pkg/runner"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

// DefaultDebounce is how long a path must stay quiet before it is formatted.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoSettings is returned when Options.Settings is nil.
var ErrNoSettings = errors.New("watch: settings function is required")

// SettingsFunc returns the current settings. It is called once per event.
type SettingsFunc func(ctx context.Context) (*config.Config, error)

// Event reports the outcome of formatting one saved file.
type Event struct {
	Path   string
	Result *pipeline.Result
	Err    error
}

// Options configures a Watcher.
type Options struct {
	// Paths are the files or directories to watch. Defaults to WorkingDir.
	Paths []string

	// WorkingDir is the base for relative paths and for ignore and exclude
	// matching. Defaults to the process working directory.
	WorkingDir string

	// Settings is required.
	Settings SettingsFunc

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// OnEvent, if set, is called from the event loop after each format.
	OnEvent func(Event)

	// Logger defaults to logging.Default().
	Logger *log.Logger
}

// Watcher watches a tree and formats files on save.
type Watcher struct {
	opts    Options
	workDir string
	logger  *log.Logger
	ready   chan struct{}
	once    sync.Once
}

// New creates a Watcher.
func New(opts Options) (*Watcher, error) {
	if opts.Settings == nil {
		return nil, ErrNoSettings
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	return &Watcher{
		opts:    opts,
		workDir: workDir,
		logger:  logger,
		ready:   make(chan struct{}),
	}, nil
}

// Ready is closed once the initial watches are in place.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// loop holds the state owned by the event loop goroutine.
type loop struct {
	w        *Watcher
	fsw      *fsnotify.Watcher
	timers   map[string]*time.Timer
	inFlight map[string]struct{}
	due      chan string
	done     chan Event
	stop     <-chan struct{}
	workers  sync.WaitGroup

	// fileDirs are directories watched only for the named files in them.
	fileDirs map[string]map[string]struct{}
}

// Run watches until ctx is cancelled. Formatting failures are reported
// through OnEvent and the log; only setup failures end Run early.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	l := &loop{
		w:        w,
		fsw:      fsw,
		timers:   make(map[string]*time.Timer),
		inFlight: make(map[string]struct{}),
		due:      make(chan string),
		done:     make(chan Event),
		stop:     ctx.Done(),
		fileDirs: make(map[string]map[string]struct{}),
	}
	defer l.workers.Wait()

	ctx = logging.WithLogger(ctx, w.logger)

	ignore := w.ignoreSet(ctx)
	roots := w.opts.Paths
	if len(roots) == 0 {
		roots = []string{w.workDir}
	}
	for _, root := range roots {
		if !filepath.IsAbs(root) {
			root = filepath.Join(w.workDir, root)
		}
		if err := l.addTree(root, ignore, false); err != nil {
			return err
		}
	}
	w.once.Do(func() { close(w.ready) })
	w.logger.Info("watching for changes", logging.FieldPaths, roots)

	for {
		select {
		case <-ctx.Done():
			for _, t := range l.timers {
				t.Stop()
			}
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			l.handle(ctx, ev)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.FieldError, err)

		case path := <-l.due:
			delete(l.timers, path)
			l.dispatch(ctx, path)

		case ev := <-l.done:
			delete(l.inFlight, ev.Path)
			l.report(ev)
		}
	}
}

// ignoreSet compiles the ignore globs of the settings at startup. Without
// settings only DefaultIgnore applies.
func (w *Watcher) ignoreSet(ctx context.Context) *runner.IgnoreSet {
	patterns := []string{config.DefaultIgnore}
	if cfg, err := w.opts.Settings(ctx); err == nil && cfg != nil {
		patterns = cfg.EffectiveIgnore()
	}

	set, err := runner.CompileIgnore(patterns)
	if err != nil {
		w.logger.Warn("invalid ignore pattern; using defaults", logging.FieldError, err)
		set, _ = runner.CompileIgnore([]string{config.DefaultIgnore})
	}
	return set
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// addTree watches root and every directory below it. When schedule is set,
// files already present are queued, which covers files written into a new
// directory before its watch existed.
func (l *loop) addTree(root string, ignore *runner.IgnoreSet, schedule bool) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		dir := filepath.Dir(root)
		if l.fileDirs[dir] == nil {
			l.fileDirs[dir] = make(map[string]struct{})
		}
		l.fileDirs[dir][root] = struct{}{}
		return l.fsw.Add(dir)
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) || os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}

		if !entry.IsDir() {
			if schedule {
				l.schedule(path)
			}
			return nil
		}

		if path != root && (strings.HasPrefix(entry.Name(), ".") || ignore.MatchDir(l.w.rel(path))) {
			return filepath.SkipDir
		}

		delete(l.fileDirs, path)
		if err := l.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (l *loop) handle(ctx context.Context, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if files, ok := l.fileDirs[filepath.Dir(ev.Name)]; ok {
		if _, named := files[ev.Name]; !named {
			return
		}
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				return
			}
			if err := l.addTree(ev.Name, l.w.ignoreSet(ctx), true); err != nil {
				l.w.logger.Warn("cannot watch new directory", logging.FieldPath, ev.Name, logging.FieldError, err)
			}
			return
		}
	}

	l.schedule(ev.Name)
}

// schedule (re)starts the debounce timer for path.
func (l *loop) schedule(path string) {
	if t, ok := l.timers[path]; ok {
		t.Reset(l.w.opts.Debounce)
		return
	}

	due, stop := l.due, l.stop
	l.timers[path] = time.AfterFunc(l.w.opts.Debounce, func() {
		select {
		case due <- path:
		case <-stop:
		}
	})
}

// dispatch formats path in a worker unless it is already being formatted
// or the settings say it should be left alone.
func (l *loop) dispatch(ctx context.Context, path string) {
	if _, busy := l.inFlight[path]; busy {
		return
	}

	cfg, err := l.w.opts.Settings(ctx)
	if err != nil {
		l.w.logger.Warn("cannot load settings", logging.FieldError, err)
		return
	}
	if !cfg.FormatOnSaveEnabled() {
		return
	}
	if !l.w.accepts(ctx, cfg, path) {
		return
	}

	l.inFlight[path] = struct{}{}
	l.workers.Add(1)

	go func() {
		defer l.workers.Done()

		ev := Event{Path: path}
		ev.Result, ev.Err = l.w.format(ctx, cfg, path)

		select {
		case l.done <- ev:
		case <-ctx.Done():
		}
	}()
}

// accepts applies the extension, ignore and exclude settings to path.
func (w *Watcher) accepts(ctx context.Context, cfg *config.Config, path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if !slices.ContainsFunc(cfg.EffectiveExtensions(), func(ext string) bool {
		return strings.EqualFold(ext, filepath.Ext(path))
	}) {
		return false
	}

	opts := runner.OptionsFromConfig(cfg, []string{path})
	opts.WorkingDir = w.workDir

	discovery, err := runner.Discover(ctx, opts)
	if err != nil {
		// The file may have been removed since the event.
		w.logger.Debug("skipping", logging.FieldPath, path, logging.FieldError, err)
		return false
	}
	if len(discovery.Excluded) > 0 {
		w.logger.Debug("excluded", logging.FieldPath, path)
	}
	return len(discovery.Files) == 1
}

func (w *Watcher) format(ctx context.Context, cfg *config.Config, path string) (*pipeline.Result, error) {
	opts := runner.OptionsFromConfig(cfg, nil).Pipeline
	opts.Write = true
	opts.DryRun = false
	opts.Diff = false

	ctx = logging.WithFields(ctx, logging.FieldPath, w.rel(path))

	return pipeline.New(style.New(cfg.Spacing())).ProcessFile(ctx, path, opts)
}

func (l *loop) report(ev Event) {
	switch {
	case ev.Err != nil:
		l.w.logger.Error("format failed", logging.FieldPath, l.w.rel(ev.Path), logging.FieldError, ev.Err)
	case ev.Result != nil && ev.Result.Written:
		l.w.logger.Info("formatted", logging.FieldPath, l.w.rel(ev.Path), logging.FieldMode, ev.Result.Mode)
	case ev.Result != nil && ev.Result.Skipped:
		l.w.logger.Debug("skipped", logging.FieldPath, l.w.rel(ev.Path), logging.FieldReason, ev.Result.SkipReason)
	}

	if l.w.opts.OnEvent != nil {
		l.w.opts.OnEvent(ev)
	}
}
