package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type Scheduler struct {
	evaluator   *Evaluator
	concurrency int
}

func NewScheduler(ev *Evaluator, concurrency int) (*Scheduler, error) {
	if ev == nil {
		return nil, errors.New("evaluator is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{evaluator: ev, concurrency: concurrency}, nil
}

// Execute streams per-object evaluation results.
//
// Channel semantics:
//   - Objects are started in plan order; results arrive in completion order
//     and carry their plan Index.
//   - In the normal (non-canceled) case, exactly one ObjectResult is sent per object.
//   - On context cancellation, the scheduler stops promptly; it may emit fewer than N results.
//   - The results channel and error channel are both closed reliably.
//   - The error channel is used for fatal errors / cancellation signals; check
//     defects are recorded on ObjectResult.Defects.
func (s *Scheduler) Execute(ctx context.Context, plan *ValidationPlan) (<-chan ObjectResult, <-chan error) {
	resultsCh := make(chan ObjectResult)
	errCh := make(chan error, 1)

	go func() {
		defer close(resultsCh)
		defer close(errCh)

		trySendErr := func(err error) {
			if err == nil {
				return
			}
			select {
			case errCh <- err:
			default:
			}
		}

		if ctx == nil {
			trySendErr(errors.New("context is nil"))
			return
		}
		if plan == nil {
			trySendErr(errors.New("validation plan is nil"))
			return
		}
		if s == nil {
			trySendErr(errors.New("scheduler is nil"))
			return
		}
		if s.evaluator == nil {
			trySendErr(errors.New("scheduler evaluator is nil"))
			return
		}
		if s.concurrency <= 0 {
			trySendErr(fmt.Errorf("scheduler concurrency must be >= 1, got %d", s.concurrency))
			return
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)

		for i, op := range plan.ObjectPlans {
			if gctx.Err() != nil {
				break
			}
			if op == nil || op.Object == nil {
				g.Go(func() error { return fmt.Errorf("nil object plan at %d", i) })
				break
			}

			// Go blocks while s.concurrency objects are in flight.
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				res := s.evaluator.EvaluateObject(op)
				res.Index = i
				select {
				case resultsCh <- res:
					return nil
				case <-gctx.Done():
					return nil
				}
			})
		}

		if err := g.Wait(); err != nil {
			trySendErr(err)
			return
		}
		trySendErr(ctx.Err())
	}()

	return resultsCh, errCh
}
