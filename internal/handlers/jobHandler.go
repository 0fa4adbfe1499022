package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tablerag/internal/adapter"
	"tablerag/internal/adapter/utils"
	"tablerag/internal/config"
	"tablerag/internal/domain/jobModel"
	"tablerag/internal/job"
	"tablerag/internal/metrics"
	"tablerag/internal/rag"
	"tablerag/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service    *job.Service
	ragService rag.Service
}

type newJobData struct {
	id       string
	traceId  string
	fileName string
	filePath string
}

func InitJobHandler(jobService *job.Service, ragService rag.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, ragService: ragService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func getRagService() rag.Service {
	if handlerInstance == nil {
		return nil
	}
	return handlerInstance.ragService
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// PostIndexHandler godoc
// @Summary      Upload a document for indexing
// @Description  Receives a file via multipart/form-data, stages it to a temporary directory and queues an indexing job. Re-uploading the same document adds its chunks again; there is no deduplication.
// @Tags         Indexing
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "The tabular or text document to index"
// @Success      202  {object}  api.InitJobResponse  "Accepted, poll the status URL"
// @Failure      400  {object}  api.JobResponse      "Missing file or upload too large"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /index [post]
func PostIndexHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Write error")
		return
	}

	newJob := newJobData{
		id:       utils.GetNewUUID(),
		traceId:  traceIdFrom(r.Context()),
		fileName: fileMetadata.Filename,
		filePath: tempFilePath,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetJobHandler godoc
// @Summary      Get indexing job status
// @Tags         Indexing
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /jobs/{id} [get]
func GetJobHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, traceIdFrom(r.Context()))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

func CreateNewJob(newJob newJobData) {
	logJH.Info("To create new job", "traceId", newJob.traceId, "jobId", newJob.id)
	handlerInstance.pushToJobChannel(newJob)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {
	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IndexInit
	_job.JobPayload.FileName = newJob.fileName
	_job.JobPayload.FilePath = newJob.filePath

	//the client can poll the job id right away
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, newJob.traceId)
	if err := h.service.JobStore.SaveJob(ctxC, _job); err != nil {
		logJH.Error("Could not persist queued job", "jobId", _job.Id, "error", err)
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send, backpressure on purpose
	logJH.Info("Created new indexing job", "jobId", _job.Id, "file", _job.JobPayload.FileName)
}
