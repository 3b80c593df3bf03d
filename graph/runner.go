package graph

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Runner drives a single node sequentially from a channel of steps. It is the
// smallest host that honours the Node lifecycle; it does no scheduling,
// buffering or flow control of its own.
//
// Run must be called from whichever goroutine the node requires. Display nodes
// in particular need the process main thread on some platforms.
type Runner struct {
	Name string
	Node Node

	// Inputs are the tags connected to the node.
	Inputs []string
}

// Run wires the node, opens it, feeds it every step until steps is closed or
// ctx is cancelled, and closes it. The first failing callback stops the run
// and is returned as a *StepError. Cancellation is not an error.
func (r *Runner) Run(ctx context.Context, steps <-chan Step) (err error) {
	rlog := log.WithField("node", r.Name)

	contract := NewContract(r.Inputs...)
	if cerr := r.Node.Contract(contract); cerr != nil {
		return &StepError{Node: r.Name, Phase: PhaseContract, Timestamp: Unstarted, Err: cerr}
	}

	if oerr := r.Node.Open(NewContext(r.Name, Unstarted, nil)); oerr != nil {
		return &StepError{Node: r.Name, Phase: PhaseOpen, Timestamp: Unstarted, Err: oerr}
	}
	rlog.Debugf("Opened with inputs %v", contract.Tags())

	defer func() {
		cerr := r.Node.Close(NewContext(r.Name, Done, nil))
		if cerr != nil {
			rlog.Errorf("Close failed: %v", cerr)
			if err == nil {
				err = &StepError{Node: r.Name, Phase: PhaseClose, Timestamp: Done, Err: cerr}
			}
		}
		rlog.Debugf("Closed")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-steps:
			if !ok {
				return nil
			}
			if perr := r.process(contract, s); perr != nil {
				return &StepError{Node: r.Name, Phase: PhaseProcess, Timestamp: s.Timestamp, Err: perr}
			}
		}
	}
}

func (r *Runner) process(contract *Contract, s Step) error {
	if !s.Timestamp.IsAllowedInStream() {
		return fmt.Errorf("%w: timestamp %v is not allowed in a stream", ErrInvalidInput, s.Timestamp)
	}
	if err := contract.Check(s); err != nil {
		return err
	}
	return r.Node.Process(NewContext(r.Name, s.Timestamp, s.Inputs))
}
