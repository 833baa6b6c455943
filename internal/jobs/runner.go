package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// Job is a named unit of background work with a cron schedule.
type Job interface {
	Name() string
	Schedule() string
	Run()
}

// Runner schedules jobs on a shared cron. A job that is still running when
// its schedule fires again is skipped.
type Runner struct {
	cron    *cron.Cron
	jobs    []Job
	running mapset.Set[string]
	mu      sync.Mutex
}

func NewRunner(jobs ...Job) *Runner {
	return &Runner{
		cron:    cron.New(),
		jobs:    jobs,
		running: mapset.NewSet[string](),
	}
}

func (r *Runner) Start() {
	for _, job := range r.jobs {
		err := r.cron.AddFunc(job.Schedule(), func() {
			r.mu.Lock()
			if r.running.Contains(job.Name()) {
				r.mu.Unlock()
				logrus.Warnf("job %s is already running", job.Name())
				return
			}
			r.running.Add(job.Name())
			r.mu.Unlock()

			defer func() {
				r.mu.Lock()
				defer r.mu.Unlock()
				r.running.Remove(job.Name())
			}()

			job.Run()
		})
		if err != nil {
			logrus.Errorf("failed to schedule job %s: %v", job.Name(), err)
			panic(err)
		}
		logrus.Infof("scheduled job %s at %s", job.Name(), job.Schedule())
	}

	r.cron.Start()
}

func (r *Runner) Stop() {
	logrus.Infof("stopping all jobs")
	r.cron.Stop()
}
