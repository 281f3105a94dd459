package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const JobEmailDelivery = "email_delivery"

type Service struct {
	log   *zap.Logger
	queue chan job
	wg    sync.WaitGroup
	once  sync.Once
}

type job struct {
	Type string
	Key  string
	Run  func(context.Context) error
}

// New returns a queue holding at most size pending jobs.
func New(size int, log *zap.Logger) *Service {
	if size <= 0 {
		size = 128
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:   log,
		queue: make(chan job, size),
	}
}

// Start runs a single worker until ctx is done or Stop drains the queue.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.worker(ctx)
}

// Enqueue reports false when the queue is full; the job is dropped.
func (s *Service) Enqueue(jobType, key string, run func(context.Context) error) bool {
	select {
	case s.queue <- job{Type: jobType, Key: key, Run: run}:
		return true
	default:
		s.log.Warn("job queue full", zap.String("jobType", jobType), zap.String("key", key))
		return false
	}
}

// Stop closes the queue and waits for the worker to finish what is pending.
// Enqueue must not be called after Stop.
func (s *Service) Stop() {
	s.once.Do(func() { close(s.queue) })
	s.wg.Wait()
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-s.queue:
			if !ok {
				return
			}
			if err := s.runJob(ctx, j); err != nil {
				s.log.Warn("job run failed", zap.String("jobType", j.Type), zap.String("key", j.Key), zap.Error(err))
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) error {
	s.log.Debug("job started", zap.String("jobType", j.Type), zap.String("key", j.Key))
	if err := j.Run(ctx); err != nil {
		return err
	}
	s.log.Info("job completed", zap.String("jobType", j.Type), zap.String("key", j.Key))
	return nil
}
