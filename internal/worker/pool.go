// Package worker runs batch jobs with bounded concurrency.
package worker

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Job is one unit of batch work, identified by Name in logs and results.
type Job struct {
	Name    string
	Payload any
}

// Result pairs a job with the error its handler returned, if any.
type Result struct {
	Job Job
	Err error
}

// Handler processes a single job.
type Handler func(ctx context.Context, job Job) error

// Run fans jobs out to at most numWorkers goroutines and returns one Result
// per job, in input order. A failing job does not stop the others; jobs not
// yet started when ctx is cancelled report ctx.Err().
func Run(ctx context.Context, jobs []Job, numWorkers int, handle Handler) []Result {
	if numWorkers < 1 {
		numWorkers = 1
	}

	results := make([]Result, len(jobs))
	var g errgroup.Group
	g.SetLimit(numWorkers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			results[i] = Result{Job: jobs[i], Err: runJob(ctx, i, jobs[i], handle)}
			return nil
		})
	}
	_ = g.Wait()

	log.Debug().Int("jobs", len(jobs)).Int("workers", numWorkers).Msg("batch finished")
	return results
}

func runJob(ctx context.Context, index int, job Job, handle Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := handle(ctx, job); err != nil {
		log.Error().Err(err).Int("index", index).Str("job", job.Name).Msg("job failed")
		return err
	}
	return nil
}

// Failed returns only the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
