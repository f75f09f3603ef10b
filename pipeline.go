package keel

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lodehart/keel/gjk"
)

// CandidatePair is a pair of bodies the broad phase flagged as potentially
// intersecting.
type CandidatePair struct {
	A, B Body
}

// Contact is a resolved candidate pair.
type Contact struct {
	Key        PairKey
	A, B       Body
	Resolution Resolution
}

// Pipeline resolves batches of candidate pairs concurrently. Duplicate pairs
// in a batch, in either order, are resolved once. Pairs on which the engine
// fails to converge are logged and skipped rather than failing the batch.
type Pipeline struct {
	Engine  Engine
	Workers int
	Logger  *zap.Logger
}

func NewPipeline(engine Engine, workers int, logger *zap.Logger) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{Engine: engine, Workers: workers, Logger: logger}
}

// Run resolves every distinct pair in the batch and returns the contacts in
// no particular order.
func (p *Pipeline) Run(ctx context.Context, pairs []CandidatePair) ([]Contact, error) {
	seen := make(map[PairKey]struct{}, len(pairs))
	distinct := make([]CandidatePair, 0, len(pairs))
	for _, pair := range pairs {
		key := NewPairKey(pair.A, pair.B)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, pair)
	}

	results := make([]*Contact, len(distinct))

	g, ctx := errgroup.WithContext(ctx)
	chunkSize := (len(distinct) + p.Workers - 1) / p.Workers

	for workerID := 0; workerID < p.Workers; workerID++ {
		start := workerID * chunkSize
		end := min((workerID+1)*chunkSize, len(distinct))
		if start >= end {
			break
		}

		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				pair := distinct[i]
				res, err := p.Engine.Resolve(pair.A.Shape, pair.B.Shape)
				if err != nil {
					var cerr *gjk.ConvergenceError
					if errors.As(err, &cerr) {
						p.Logger.Warn("pair skipped: engine did not converge",
							zap.String("pair", NewPairKey(pair.A, pair.B).String()),
							zap.String("stage", cerr.Stage),
							zap.Int("iterations", cerr.Iterations))
						continue
					}
					return err
				}

				results[i] = &Contact{
					Key:        NewPairKey(pair.A, pair.B),
					A:          pair.A,
					B:          pair.B,
					Resolution: res,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, len(results))
	for _, c := range results {
		if c != nil {
			contacts = append(contacts, *c)
		}
	}
	return contacts, nil
}
