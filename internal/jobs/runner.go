package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Name() string
	Run()
}

type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor runs cron jobs on their schedule. A job whose previous run is
// still in progress is skipped rather than run twice.
type TaskExecutor struct {
	cron    *cron.Cron
	jobs    []CronJob
	running mapset.Set[string]
	mu      sync.Mutex
}

func NewTaskExecutor(jobs ...CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewThreadUnsafeSet[string](),
	}
}

// Start schedules every job and starts the cron in its own goroutine.
func (t *TaskExecutor) Start() error {
	for _, job := range t.jobs {
		if job.Schedule() == "" {
			logrus.Infof("job %s has no schedule, skipping", job.Name())
			continue
		}

		err := t.cron.AddFunc(job.Schedule(), func() {
			t.runOnce(job)
		})
		if err != nil {
			logrus.Errorf("failed to add job %s to cron: %v", job.Name(), err)
			return err
		}
		logrus.Infof("scheduled job %s at %q", job.Name(), job.Schedule())
	}

	t.cron.Start()
	return nil
}

// runOnce runs job unless a previous run is still in progress and reports whether it ran.
func (t *TaskExecutor) runOnce(job Job) bool {
	t.mu.Lock()
	if t.running.Contains(job.Name()) {
		t.mu.Unlock()
		logrus.Warnf("job %s is already running", job.Name())
		return false
	}
	t.running.Add(job.Name())
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.running.Remove(job.Name())
	}()

	job.Run()
	return true
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all jobs")
	t.cron.Stop()
}
