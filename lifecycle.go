package zha

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/zha/channel"
	"sync"
)

type Stage string

const (
	StageInitialize Stage = "initialize"
	StageConfigure  Stage = "configure"
)

type State uint8

const (
	Pending State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Outcome is the result of one stage on one channel. Err is nil on success.
type Outcome struct {
	ChannelID string
	Stage     Stage
	Err       error
}

type lifecycleStatus struct {
	m      *sync.Mutex
	states map[Stage]map[string]State
}

func newLifecycleStatus() *lifecycleStatus {
	return &lifecycleStatus{m: &sync.Mutex{}, states: map[Stage]map[string]State{}}
}

func (l *lifecycleStatus) set(stage Stage, id string, s State) {
	l.m.Lock()
	defer l.m.Unlock()

	if _, found := l.states[stage]; !found {
		l.states[stage] = map[string]State{}
	}

	l.states[stage][id] = s
}

func (l *lifecycleStatus) get(stage Stage, id string) State {
	l.m.Lock()
	defer l.m.Unlock()

	return l.states[stage][id]
}

// Status returns the state of a channel for a stage, Pending if the stage has not
// been run.
func (e *EndpointChannels) Status(stage Stage, channelID string) State {
	return e.status.get(stage, channelID)
}

// Initialize runs initialize on every claimed and relay channel of the endpoint.
// A channel failing does not stop the others.
func (e *EndpointChannels) Initialize(ctx context.Context, fromCache bool) []Outcome {
	return e.execute(ctx, StageInitialize, func(ctx context.Context, ch channel.Channel) error {
		return ch.Initialize(ctx, fromCache)
	})
}

// Configure runs configure on every claimed and relay channel of the endpoint.
func (e *EndpointChannels) Configure(ctx context.Context) []Outcome {
	return e.execute(ctx, StageConfigure, func(ctx context.Context, ch channel.Channel) error {
		return ch.Configure(ctx)
	})
}

func (e *EndpointChannels) execute(ctx context.Context, stage Stage, fn func(context.Context, channel.Channel) error) []Outcome {
	chs := e.lifecycleChannels()

	for _, ch := range chs {
		e.status.set(stage, ch.ID(), Pending)
	}

	outcomes := make([]Outcome, len(chs))
	wg := &sync.WaitGroup{}

	for i, ch := range chs {
		wg.Add(1)

		go func(i int, ch channel.Channel) {
			defer wg.Done()

			err := e.device.limiter.Do(ctx, func(ctx context.Context) error {
				e.status.set(stage, ch.ID(), Running)
				return fn(ctx, ch)
			})

			outcomes[i] = Outcome{ChannelID: ch.ID(), Stage: stage, Err: err}
			logOutcome(ctx, e.logger, outcomes[i])

			if err != nil {
				e.status.set(stage, ch.ID(), Failed)
			} else {
				e.status.set(stage, ch.ID(), Succeeded)
			}
		}(i, ch)
	}

	wg.Wait()

	return outcomes
}

func logOutcome(ctx context.Context, l logwrap.Logger, o Outcome) {
	if o.Err != nil {
		l.LogWarn(ctx, fmt.Sprintf("'%s' stage failed", o.Stage), logwrap.Datum("Stage", string(o.Stage)), logwrap.Datum("Channel", o.ChannelID), logwrap.Err(o.Err))
	} else {
		l.LogDebug(ctx, "Stage completed.", logwrap.Datum("Stage", string(o.Stage)), logwrap.Datum("Channel", o.ChannelID))
	}
}
