package worker

import (
	"sync"

	"tablerag/internal/job"
	"tablerag/internal/rag"
	"tablerag/pkg/logger_i"
)

// Exactly one indexing worker runs. The vector index has a single-writer
// contract and funneling every job through one goroutine is what enforces
// it; do not add more workers without moving that serialization elsewhere.
var (
	_jobService       *job.Service
	_ragService       rag.Service
	stopWorkerChannel chan bool
	workerWaitGroup   *sync.WaitGroup
	logger            *logger_i.Logger
)

func InitServices(jobService *job.Service, ragService rag.Service) {
	_jobService = jobService
	_ragService = ragService
}

func InitIndexWorker(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger = logger_i.NewLogger("IndexWorker")
	logger.Info("Starting index worker")

	workerWaitGroup.Add(1)
	go worker()
}

func worker() {
	defer workerWaitGroup.Done()
	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			executeJob(currentJob)

		case <-stopWorkerChannel:
			logger.Info("Stop worker signal received, draining queue")
			drainQueue()
			return
		}
	}
}

// drainQueue finishes jobs that were already accepted before shutdown so a
// client who got a job id back never ends up with a job that silently
// vanished.
func drainQueue() {
	for {
		select {
		case currentJob := <-_jobService.JobChannel:
			executeJob(currentJob)
		default:
			return
		}
	}
}
