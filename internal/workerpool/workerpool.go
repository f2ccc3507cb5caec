// Package workerpool runs independent jobs over a bounded set of goroutines.
package workerpool

import (
	"runtime"
	"sync"
)

// MaxWorkers caps the pool size when the caller asks for the default.
const MaxWorkers = 32

// Pool distributes jobs across workers and collects their results.
// Results arrive in completion order; callers that need input order
// carry an index in the job and result types.
type Pool[Job any, Result any] struct {
	numWorkers int
	jobs       chan Job
	results    chan Result
	wg         sync.WaitGroup
}

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int {
	return min(runtime.GOMAXPROCS(0), MaxWorkers)
}

// New creates a pool for numJobs jobs.
// If numWorkers is 0 or negative, it defaults to DefaultWorkers.
// If numJobs is less than numWorkers, the pool is sized to match numJobs.
func New[Job any, Result any](numWorkers, numJobs int) *Pool[Job, Result] {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers()
	}
	if numJobs > 0 {
		numWorkers = min(numWorkers, numJobs)
	}
	if numJobs < 0 {
		numJobs = 0
	}

	return &Pool[Job, Result]{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numJobs),
		results:    make(chan Result, numJobs),
	}
}

// Workers returns the number of goroutines Start launches.
func (p *Pool[Job, Result]) Workers() int {
	return p.numWorkers
}

// Start launches the workers. fn is called once per submitted job.
func (p *Pool[Job, Result]) Start(fn func(Job) Result) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- fn(job)
			}
		}()
	}
}

// Submit queues a job.
func (p *Pool[Job, Result]) Submit(job Job) {
	p.jobs <- job
}

// Close stops accepting jobs. The results channel is closed once every
// worker has finished.
func (p *Pool[Job, Result]) Close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

// Results returns the channel workers publish to.
func (p *Pool[Job, Result]) Results() <-chan Result {
	return p.results
}

// Map applies fn to every job on a pool of numWorkers goroutines and
// returns the results in job order.
func Map[Job any, Result any](numWorkers int, jobs []Job, fn func(Job) Result) []Result {
	out := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return out
	}

	type indexed struct {
		i   int
		res Result
	}
	p := New[int, indexed](numWorkers, len(jobs))
	p.Start(func(i int) indexed {
		return indexed{i: i, res: fn(jobs[i])}
	})
	for i := range jobs {
		p.Submit(i)
	}
	p.Close()

	for r := range p.Results() {
		out[r.i] = r.res
	}
	return out
}
