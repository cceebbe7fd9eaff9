package jobqueue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edenhq/meeting-api/api/types"
	jobsService "github.com/edenhq/meeting-api/internal/services/jobs"
)

// GetByID returns the state of one queued job, including attempts and the
// last error, for polling async operations.
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "invalid job ID",
			})
			return
		}

		job, err := deps.JobService.GetJob(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, jobsService.ErrJobNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Status: types.StatusError,
					Error:  "job not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status: types.StatusError,
				Error:  "failed to load job",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": types.StatusOK,
			"job": gin.H{
				"id":          job.ID,
				"type":        job.Type,
				"job_status":  job.Status,
				"retry_count": job.RetryCount,
				"max_retries": job.MaxRetries,
				"error":       job.Error,
				"error_type":  job.ErrorType,
				"created_at":  job.CreatedAt,
			},
		})
	}
}
