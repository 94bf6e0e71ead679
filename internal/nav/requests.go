package nav

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"gopkg.in/eapache/queue.v1"

	"github.com/Faultbox/fishway/pkg/math"
)

// Request failures that never reach a search.
var (
	ErrQueueClosed = errors.New("request queue closed")
	ErrNoGrid      = errors.New("request has no grid")
)

// Callback receives the outcome of a request submitted with SubmitPathRequest.
type Callback func(waypoints []math.Vec3, success bool)

// Request asks for a path between two world positions.
type Request struct {
	Grid             *NavGrid
	Start, End       math.Vec3
	TurnDistance     float32
	StoppingDistance float32
	OnComplete       func(Result)
}

// Result is delivered to a request's OnComplete exactly once. On failure
// Waypoints is empty and Path is nil.
type Result struct {
	Waypoints []math.Vec3
	Path      *Path
	Success   bool
	Err       error // Why the request failed
}

// QueueConfig configures a RequestQueue.
type QueueConfig struct {
	Workers     int // Concurrent searches; <= 0 uses GOMAXPROCS
	MaxExpanded int // Per-search node limit; 0 is unlimited
}

type completed struct {
	callback func(Result)
	result   Result
}

// RequestQueue runs path searches off the caller's goroutine and hands the
// results back in batches through DrainResults.
type RequestQueue struct {
	log    *zap.Logger
	opts   SearchOptions
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc

	inflight sync.WaitGroup
	pending  atomic.Int64

	mu      sync.Mutex
	results *queue.Queue // completed, in completion order
	closed  bool
}

// NewRequestQueue creates a queue. log may be nil.
func NewRequestQueue(cfg QueueConfig, log *zap.Logger) *RequestQueue {
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &RequestQueue{
		log:     log.Named("paths"),
		opts:    SearchOptions{MaxExpanded: cfg.MaxExpanded},
		sem:     semaphore.NewWeighted(int64(workers)),
		ctx:     ctx,
		cancel:  cancel,
		results: queue.New(),
	}
}

// Submit schedules req and returns immediately. Its OnComplete runs during a
// later DrainResults call.
func (q *RequestQueue) Submit(req Request) {
	q.mu.Lock()
	if q.closed {
		q.results.Add(completed{req.OnComplete, failed(ErrQueueClosed)})
		q.mu.Unlock()
		return
	}
	q.inflight.Add(1)
	q.mu.Unlock()

	q.pending.Add(1)
	go q.run(req)
}

// SubmitPathRequest submits a request whose callback only needs the waypoints.
func (q *RequestQueue) SubmitPathRequest(grid *NavGrid, start, end math.Vec3, turnDistance float32, onComplete Callback) {
	q.Submit(Request{
		Grid:         grid,
		Start:        start,
		End:          end,
		TurnDistance: turnDistance,
		OnComplete: func(res Result) {
			if onComplete != nil {
				onComplete(res.Waypoints, res.Success)
			}
		},
	})
}

// DrainResults invokes the callbacks of every result completed so far, in
// completion order, and returns how many ran. Call it once per tick from the
// goroutine that owns the simulation state. Callbacks run without the queue
// lock held, so they may submit new requests.
func (q *RequestQueue) DrainResults() int {
	q.mu.Lock()
	batch := q.results
	q.results = queue.New()
	q.mu.Unlock()

	n := batch.Length()
	for batch.Length() > 0 {
		c := batch.Remove().(completed)
		if c.callback != nil {
			c.callback(c.result)
		}
	}
	return n
}

// Pending returns the number of submitted requests whose search has not finished.
func (q *RequestQueue) Pending() int {
	return int(q.pending.Load())
}

// Wait blocks until every submitted request has a result ready to drain.
// It must not be called concurrently with Submit.
func (q *RequestQueue) Wait() {
	q.inflight.Wait()
}

// Close stops accepting work. Requests still waiting for a worker fail with
// ErrQueueClosed; running searches finish. Results stay drainable.
func (q *RequestQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.cancel()
	q.inflight.Wait()
}

func (q *RequestQueue) run(req Request) {
	defer q.inflight.Done()
	defer q.pending.Add(-1)

	var res Result
	if err := q.sem.Acquire(q.ctx, 1); err != nil {
		res = failed(fmt.Errorf("%w: %v", ErrQueueClosed, err))
	} else {
		res = q.process(req)
		q.sem.Release(1)
	}

	q.mu.Lock()
	q.results.Add(completed{req.OnComplete, res})
	q.mu.Unlock()
}

func (q *RequestQueue) process(req Request) Result {
	if req.Grid == nil {
		return failed(ErrNoGrid)
	}

	start := req.Grid.CellFromWorldPoint(req.Start)
	goal := req.Grid.CellFromWorldPoint(req.End)

	found, err := FindPath(req.Grid, start, goal, q.opts)
	if err != nil {
		q.log.Debug("path request failed",
			zap.Int("start_x", start.GridX), zap.Int("start_y", start.GridY),
			zap.Int("goal_x", goal.GridX), zap.Int("goal_y", goal.GridY),
			zap.Int("expanded", found.Expanded),
			zap.Error(err))
		return failed(err)
	}

	waypoints := Simplify(found.Nodes)
	if len(waypoints) == 0 {
		// Start and goal share a cell
		waypoints = []math.Vec3{goal.WorldPosition}
	}

	q.log.Debug("path found",
		zap.Int("cost", found.Cost),
		zap.Int("expanded", found.Expanded),
		zap.Int("waypoints", len(waypoints)))

	return Result{
		Waypoints: waypoints,
		Path:      BuildPath(waypoints, req.Start, req.TurnDistance, req.StoppingDistance),
		Success:   true,
	}
}

func failed(err error) Result {
	return Result{Waypoints: []math.Vec3{}, Err: err}
}
