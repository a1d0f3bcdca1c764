// Package runner manages the lifecycle of external search processes: spawn,
// streaming output collection, cancellation, and terminal-state reporting.
package runner

import (
	"bufio"
	"context"
	"os/exec"
	"sync"

	"github.com/standardbeagle/findsweep/internal/config"
	"github.com/standardbeagle/findsweep/internal/debug"
	fserrors "github.com/standardbeagle/findsweep/internal/errors"
	"github.com/standardbeagle/findsweep/internal/ripgrep"
	"github.com/standardbeagle/findsweep/internal/searchtypes"
)

// Callbacks receive the outcome of a run. OnMatch streams matches in
// arrival order; OnComplete fires exactly once, strictly after all OnMatch
// calls, with the full accumulated list (possibly empty). OnError fires for
// failed runs. Cancelled runs invoke neither OnComplete nor OnError.
type Callbacks struct {
	OnMatch    func(searchtypes.Match)
	OnComplete func([]searchtypes.Match)
	OnError    func(error)
}

// Run is one external-process invocation, from spawn to terminal state.
type Run struct {
	ID      int64
	Pattern string

	cmd       *exec.Cmd
	state     searchtypes.RunState
	cancelled bool
	matches   []searchtypes.Match
	stderr    []byte
	callbacks Callbacks
	done      chan struct{}
}

// Done returns a channel closed when the run reaches a terminal state
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Runner orchestrates search runs against the external tool. At most one
// run is live per Runner: starting a new run cancels any prior live run
// first. The live slot is single-writer; only Start and Cancel mutate it,
// and always as a full replace or clear.
type Runner struct {
	cfg *config.Config

	mu     sync.Mutex
	live   *Run
	nextID int64
}

// New creates a runner bound to the given configuration
func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Start spawns a new search run. Any prior live run is cancelled first.
// Validation failures (blank pattern, denylisted flag, missing binary)
// return an error immediately and spawn nothing. On success the returned
// run is live and its callbacks will fire as output arrives.
func (r *Runner) Start(pattern string, opts searchtypes.Options, cb Callbacks) (*Run, error) {
	args, err := ripgrep.BuildArgs(pattern, opts, r.cfg)
	if err != nil {
		return nil, err
	}

	binary := r.cfg.Search.Binary
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fserrors.NewToolError(binary, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelLocked()

	cmd := exec.Command(path, args...)
	if opts.SearchPath == "" {
		cmd.Dir = r.cfg.Project.Root
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fserrors.NewSpawnError(binary, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fserrors.NewSpawnError(binary, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fserrors.NewSpawnError(binary, err)
	}

	r.nextID++
	run := &Run{
		ID:        r.nextID,
		Pattern:   pattern,
		cmd:       cmd,
		state:     searchtypes.RunStateRunning,
		callbacks: cb,
		done:      make(chan struct{}),
	}
	r.live = run

	debug.LogSearch("run %d started: %s %v\n", run.ID, binary, args)

	var outputDone sync.WaitGroup
	outputDone.Add(2)

	go func() {
		defer outputDone.Done()
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			match, ok := ripgrep.ParseLine(line)
			if !ok {
				continue
			}
			r.deliverMatch(run, match)
		}
	}()

	go func() {
		defer outputDone.Done()
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			r.mu.Lock()
			run.stderr = append(run.stderr, scanner.Bytes()...)
			run.stderr = append(run.stderr, '\n')
			r.mu.Unlock()
		}
	}()

	go func() {
		// The completion callback must fire strictly after all output
		// callbacks, so drain both pipes before waiting on the process.
		outputDone.Wait()
		waitErr := cmd.Wait()
		r.finalize(run, waitErr)
	}()

	return run, nil
}

// Cancel terminates the live run, if any. Cancellation is cooperative: the
// terminate signal is sent here and the exit path finalizes the run as
// Cancelled, suppressing both success and error callbacks.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLocked()
}

// Live returns the identifier of the live run, or 0 when idle
func (r *Runner) Live() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.live == nil {
		return 0
	}
	return r.live.ID
}

// State returns the current state of the given run
func (r *Runner) State(run *Run) searchtypes.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return run.state
}

func (r *Runner) cancelLocked() {
	run := r.live
	if run == nil {
		return
	}

	run.cancelled = true
	r.live = nil
	if run.cmd.Process != nil {
		_ = run.cmd.Process.Kill()
	}
	debug.LogSearch("run %d cancelled\n", run.ID)
}

// deliverMatch appends a match and streams it, unless the run was
// cancelled in the meantime: output arriving between a cancellation
// request and process exit must stay invisible.
func (r *Runner) deliverMatch(run *Run, match searchtypes.Match) {
	r.mu.Lock()
	if run.cancelled || run.state != searchtypes.RunStateRunning {
		r.mu.Unlock()
		return
	}
	run.matches = append(run.matches, match)
	onMatch := run.callbacks.OnMatch
	r.mu.Unlock()

	if onMatch != nil {
		onMatch(match)
	}
}

// finalize moves a run to its terminal state exactly once and fires the
// appropriate callback outside the lock.
func (r *Runner) finalize(run *Run, waitErr error) {
	r.mu.Lock()

	if run.state != searchtypes.RunStateRunning {
		r.mu.Unlock()
		return
	}

	exitCode := 0
	signalled := false
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
			signalled = exitCode == -1
		} else {
			exitCode = -1
			signalled = true
		}
	}

	var state searchtypes.RunState
	switch {
	case run.cancelled || signalled:
		state = searchtypes.RunStateCancelled
	case exitCode == 0 || exitCode == 1:
		// 0 = matches found, 1 = no matches; both are successful runs.
		state = searchtypes.RunStateCompleted
	default:
		state = searchtypes.RunStateFailed
	}
	run.state = state

	if r.live == run {
		r.live = nil
	}

	matches := run.matches
	stderr := string(run.stderr)
	cb := run.callbacks
	r.mu.Unlock()

	debug.LogSearch("run %d finished: state=%s matches=%d\n", run.ID, state, len(matches))

	switch state {
	case searchtypes.RunStateCompleted:
		if cb.OnComplete != nil {
			cb.OnComplete(matches)
		}
	case searchtypes.RunStateFailed:
		if cb.OnError != nil {
			cb.OnError(fserrors.NewRunError(run.Pattern, exitCode, stderr))
		}
	case searchtypes.RunStateCancelled:
		// Cancellation is not an error and stays silent.
	}

	close(run.done)
}

// Search runs one search to completion and returns the accumulated
// matches. It is a blocking convenience wrapper over Start for callers
// that do not stream. Context cancellation cancels the run and returns
// ctx.Err().
func (r *Runner) Search(ctx context.Context, pattern string, opts searchtypes.Options) ([]searchtypes.Match, error) {
	type outcome struct {
		matches []searchtypes.Match
		err     error
	}
	resultCh := make(chan outcome, 1)

	run, err := r.Start(pattern, opts, Callbacks{
		OnComplete: func(matches []searchtypes.Match) {
			resultCh <- outcome{matches: matches}
		},
		OnError: func(err error) {
			resultCh <- outcome{err: err}
		},
	})
	if err != nil {
		return nil, err
	}

	select {
	case res := <-resultCh:
		return res.matches, res.err
	case <-ctx.Done():
		r.Cancel()
		<-run.Done()
		return nil, ctx.Err()
	case <-run.Done():
		// Cancelled by a competing Start; no result is delivered.
		select {
		case res := <-resultCh:
			return res.matches, res.err
		default:
			return nil, nil
		}
	}
}
