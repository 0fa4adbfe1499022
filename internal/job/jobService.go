package job

import (
	"tablerag/internal/domain/jobModel"
)

type Service struct {
	JobChannel chan jobModel.Job
	JobStore   jobModel.JobStore
}

type ServiceConfig struct {
	JobChannel chan jobModel.Job
	JobStore   jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel: cfg.JobChannel,
		JobStore:   cfg.JobStore,
	}
}
