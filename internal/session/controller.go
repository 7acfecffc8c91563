package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/shuffle"
	"github.com/san-kum/sortviz/internal/trace"
)

// Controller owns the observable sequence and runs at most one sort session
// at a time over it.
//
// Observers are called one at a time in publication order. They may call
// Current, Active and Session but must not start runs or randomize from
// inside OnStep.
type Controller struct {
	registry *algorithms.Registry
	cfg      Config
	logger   zerolog.Logger
	shuffler *shuffle.Shuffler

	// pubMu serializes delivery so observers see one ordered stream.
	pubMu     sync.Mutex
	observers []trace.Observer
	metrics   []trace.Metric

	mu         sync.Mutex
	current    trace.Sequence
	highlights []int
	active     bool
	epoch      uint64
	sessionID  string
	cancel     context.CancelFunc
}

func New(initial trace.Sequence, registry *algorithms.Registry, cfg Config) *Controller {
	return &Controller{
		registry:  registry,
		cfg:       cfg,
		logger:    zerolog.Nop(),
		shuffler:  shuffle.New(cfg.Seed),
		observers: make([]trace.Observer, 0),
		metrics:   make([]trace.Metric, 0),
		current:   initial.Clone(),
	}
}

func (c *Controller) SetLogger(l zerolog.Logger) { c.logger = l }

func (c *Controller) AddObserver(o trace.Observer) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	c.observers = append(c.observers, o)
}

func (c *Controller) AddMetric(m trace.Metric) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	c.metrics = append(c.metrics, m)
}

// SetConfig replaces pacing and policy for sessions started afterwards.
// A changed seed restarts the randomizer from that seed.
func (c *Controller) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg.Seed != c.cfg.Seed {
		c.shuffler = shuffle.New(cfg.Seed)
	}
	c.cfg = cfg
}

// Current returns copies of the observable sequence and highlights.
func (c *Controller) Current() (trace.Sequence, []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone(), append([]int(nil), c.highlights...)
}

func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Session returns the id of the active session, or "" when idle.
func (c *Controller) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return ""
	}
	return c.sessionID
}

// RequestSort runs algorithm over the current sequence.
func (c *Controller) RequestSort(ctx context.Context, algorithm string) (*Result, error) {
	return c.run(ctx, nil, algorithm)
}

// Run sorts a copy of input with algorithm, publishing every Step and finally
// the sorted sequence. It blocks until the session ends.
func (c *Controller) Run(ctx context.Context, input trace.Sequence, algorithm string) (*Result, error) {
	return c.run(ctx, input.Clone(), algorithm)
}

func (c *Controller) run(ctx context.Context, input trace.Sequence, algorithm string) (*Result, error) {
	alg, err := c.registry.Get(algorithm)
	if err != nil {
		c.logger.Warn().Str("algorithm", algorithm).Msg("run rejected: unknown algorithm")
		return nil, err
	}

	p, input, err := c.begin(ctx, input, algorithm)
	if err != nil {
		c.logger.Warn().Str("algorithm", algorithm).Str("active", c.Session()).Msg("run rejected: session active")
		return nil, err
	}

	c.logger.Info().
		Str("session", p.session).
		Str("algorithm", algorithm).
		Int("size", len(input)).
		Dur("delay", p.delay).
		Msg("session started")

	result := &Result{
		ID:        p.session,
		Algorithm: algorithm,
		Initial:   input.Clone(),
		Delay:     p.delay,
		Started:   time.Now(),
	}

	final := alg.Sort(input, p.emit)

	result.Final = final
	result.StepCount = p.index
	result.Steps = p.steps
	result.Elapsed = time.Since(result.Started)

	return c.finish(p, result)
}

// begin claims the controller for a new session according to the policy.
func (c *Controller) begin(ctx context.Context, input trace.Sequence, algorithm string) (*pacer, trace.Sequence, error) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		if c.cfg.Policy != PolicySupersede {
			return nil, nil, fmt.Errorf("run %s: %w", algorithm, trace.ErrSessionActive)
		}
		c.logger.Info().Str("session", c.sessionID).Str("by", algorithm).Msg("session superseded")
		c.cancel()
	}

	if input == nil {
		input = c.current.Clone()
	}

	c.epoch++
	runCtx, cancel := context.WithCancel(ctx)
	c.active = true
	c.cancel = cancel
	c.sessionID = ulid.Make().String()
	c.current = input.Clone()
	c.highlights = nil

	p := &pacer{
		ctrl:      c,
		ctx:       runCtx,
		cancel:    cancel,
		epoch:     c.epoch,
		session:   c.sessionID,
		algorithm: algorithm,
		delay:     c.cfg.StepDelay(algorithm),
		record:    c.cfg.Record,
	}

	c.resetMetrics(input)
	return p, input, nil
}

// resetMetrics runs with pubMu held.
func (c *Controller) resetMetrics(initial trace.Sequence) {
	for _, m := range c.metrics {
		m.Reset()
		if pr, ok := m.(interface{ Prime(trace.Sequence) }); ok {
			pr.Prime(initial)
		}
	}
}

func (c *Controller) finish(p *pacer, result *Result) (*Result, error) {
	defer p.cancel()

	if p.declined {
		return c.abandon(p, result)
	}

	c.pubMu.Lock()
	c.mu.Lock()
	if p.epoch != c.epoch {
		c.mu.Unlock()
		c.pubMu.Unlock()
		return result, c.superseded(p)
	}
	c.current = result.Final.Clone()
	c.highlights = nil
	c.active = false
	c.cancel = nil
	c.mu.Unlock()

	c.deliver(trace.Event{
		Session:   p.session,
		Algorithm: p.algorithm,
		Index:     p.index,
		Step:      trace.NewStep(result.Final),
		Final:     true,
	}, false)
	result.Metrics = c.metricValues()
	c.pubMu.Unlock()

	c.logger.Info().
		Str("session", p.session).
		Str("algorithm", p.algorithm).
		Int("steps", result.StepCount).
		Dur("elapsed", result.Elapsed).
		Msg("session complete")

	return result, nil
}

// abandon handles a session whose emitter stopped before the algorithm
// finished: either superseded or cancelled by the caller's context.
func (c *Controller) abandon(p *pacer, result *Result) (*Result, error) {
	c.mu.Lock()
	if p.epoch != c.epoch {
		c.mu.Unlock()
		return result, c.superseded(p)
	}
	c.highlights = nil
	c.active = false
	c.cancel = nil
	c.mu.Unlock()

	err := p.ctx.Err()
	if err == nil {
		err = context.Canceled
	}
	c.logger.Info().
		Str("session", p.session).
		Str("algorithm", p.algorithm).
		Int("steps", result.StepCount).
		Err(err).
		Msg("session cancelled")
	return result, err
}

func (c *Controller) superseded(p *pacer) error {
	c.logger.Debug().Str("session", p.session).Int("steps", p.index).Msg("stale session stopped")
	return fmt.Errorf("session %s: %w", p.session, trace.ErrSuperseded)
}

func (c *Controller) isCurrent(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active && epoch == c.epoch
}

// publishStep makes ev the observable state if its epoch is still current.
func (c *Controller) publishStep(epoch uint64, ev trace.Event) bool {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	if !c.active || epoch != c.epoch {
		c.mu.Unlock()
		return false
	}
	c.current = ev.Step.Values()
	c.highlights = ev.Step.Highlights()
	c.mu.Unlock()

	if c.logger.GetLevel() <= zerolog.DebugLevel {
		c.logger.Debug().
			Str("session", ev.Session).
			Int("index", ev.Index).
			Ints("highlights", ev.Step.Highlights()).
			Msg("step")
	}
	c.deliver(ev, true)
	return true
}

// deliver runs with pubMu held.
func (c *Controller) deliver(ev trace.Event, observe bool) {
	if observe {
		for _, m := range c.metrics {
			m.Observe(ev.Step)
		}
	}
	for _, o := range c.observers {
		o.OnStep(ev)
	}
}

func (c *Controller) metricValues() map[string]float64 {
	values := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		values[m.Name()] = m.Value()
	}
	return values
}

// Randomize replaces the current sequence with a random permutation of it
// and publishes the result.
func (c *Controller) Randomize() (trace.Sequence, error) {
	if c.Active() {
		c.logger.Warn().Msg("randomize rejected: session active")
		return nil, fmt.Errorf("randomize: %w", trace.ErrSessionActive)
	}

	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		c.logger.Warn().Msg("randomize rejected: session active")
		return nil, fmt.Errorf("randomize: %w", trace.ErrSessionActive)
	}
	c.current = c.shuffler.Shuffle(c.current)
	c.highlights = nil
	seq := c.current.Clone()
	c.mu.Unlock()

	c.logger.Debug().Str("sequence", seq.String()).Msg("randomized")
	c.deliver(trace.Event{Step: trace.NewStep(seq)}, false)
	return seq, nil
}

// SetSequence replaces the current sequence while idle and publishes it.
func (c *Controller) SetSequence(seq trace.Sequence) error {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return fmt.Errorf("set sequence: %w", trace.ErrSessionActive)
	}
	c.current = seq.Clone()
	c.highlights = nil
	c.mu.Unlock()

	c.deliver(trace.Event{Step: trace.NewStep(seq)}, false)
	return nil
}

// Stop cancels the active session, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active && c.cancel != nil {
		c.cancel()
	}
}
