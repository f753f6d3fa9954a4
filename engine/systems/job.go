package systems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
)

// JobSystem runs jobs on a fixed pool of workers. Their callbacks are queued
// and only run when Update is called, so they can safely touch the scene.
type JobSystem struct {
	numWorkers int
	jobQueue   chan metadata.JobInfo
	results    chan metadata.JobResultEntry
	wg         sync.WaitGroup

	mutex    sync.RWMutex
	isClosed bool
}

var ErrNoWorkers = errors.New("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = errors.New("job system already shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan metadata.JobInfo, channelSize),
		results:    make(chan metadata.JobResultEntry, metadata.MAX_JOB_RESULTS),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.EntryPoint(job.ParamData)
				if err != nil {
					core.LogError("%s job failed: %s", job.JobType, err)
				}
				js.results <- metadata.JobResultEntry{
					JobType:   job.JobType,
					Result:    result,
					Err:       err,
					OnSuccess: job.OnSuccess,
					OnFail:    job.OnFail,
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Waits for running jobs; their callbacks are dropped.
 */
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.isClosed {
		js.mutex.Unlock()
		return ErrJobSystemClosed
	}
	js.isClosed = true
	close(js.jobQueue)
	js.mutex.Unlock()

	done := make(chan struct{})
	go func() {
		js.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-js.results:
		case <-done:
			return nil
		}
	}
}

/**
 * @brief Updates the job system. Should happen once an update cycle.
 * Runs the callbacks of every job finished so far and returns how many ran.
 */
func (js *JobSystem) Update() int {
	count := 0
	for {
		select {
		case entry := <-js.results:
			count++
			if entry.Err != nil {
				if entry.OnFail != nil {
					entry.OnFail(entry.Err)
				}
				continue
			}
			if entry.OnSuccess != nil {
				entry.OnSuccess(entry.Result)
			}
		default:
			return count
		}
	}
}

/**
 * @brief Submits the provided job to be queued for execution.
 * @param info The description of the job to be executed.
 */
func (js *JobSystem) Submit(info metadata.JobInfo) error {
	if info.EntryPoint == nil {
		return fmt.Errorf("func Submit - job has no entry point: %w", core.ErrInvalidConfig)
	}
	js.mutex.RLock()
	defer js.mutex.RUnlock()
	if js.isClosed {
		return ErrJobSystemClosed
	}
	js.jobQueue <- info
	return nil
}
