package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
)

type JobHandler struct {
	js  service.JobService
	ss  service.SchedulerService
	rs  service.RunnerService
	loc *time.Location
}

func NewJobHandler(js service.JobService, ss service.SchedulerService, rs service.RunnerService, loc *time.Location) *JobHandler {
	return &JobHandler{js: js, ss: ss, rs: rs, loc: loc}
}

func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	date, err := parseDate(c.Query("date"), h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be YYYY-MM-DD",
		})
	}

	jobs, err := h.js.List(c.Context(), c.Query("status"), date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list jobs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (h *JobHandler) ResetJob(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id is required",
		})
	}

	job, err := h.js.Reset(c.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	case errors.Is(err, repository.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only failed jobs can be reset",
		})
	case err != nil:
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to reset job",
		})
	}

	slog.Info("job reset", "job_id", id, "operator", GetOperator(c))
	return c.Status(fiber.StatusOK).JSON(job)
}

func (h *JobHandler) Schedule(c *fiber.Ctx) error {
	date, err := parseDate(c.Query("date"), h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be YYYY-MM-DD",
		})
	}
	if date.IsZero() {
		date = time.Now().In(h.loc)
	}

	result, err := h.ss.ScheduleDay(c.Context(), date)
	if result == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := fiber.Map{
		"date":    result.Date,
		"created": result.Created,
		"slots":   result.Slots,
	}
	if err != nil {
		resp["error"] = err.Error()
		return c.Status(fiber.StatusMultiStatus).JSON(resp)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *JobHandler) Run(c *fiber.Ctx) error {
	result, err := h.rs.RunDue(c.Context())
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to run due jobs",
		})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
