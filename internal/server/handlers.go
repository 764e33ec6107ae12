package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reelpress/internal/clip"
	"reelpress/internal/logging"
	"reelpress/internal/pipeline"
	"reelpress/internal/task"
)

// Scheduler accepts a registered task for background processing.
type Scheduler interface {
	Submit(id string) error
}

// Handlers implements the HTTP intake and status boundary.
type Handlers struct {
	registry  *task.Registry
	scheduler Scheduler
	logger    *slog.Logger
}

// NewHandlers wires the boundary to the registry and scheduler.
func NewHandlers(registry *task.Registry, scheduler Scheduler, logger *slog.Logger) *Handlers {
	return &Handlers{
		registry:  registry,
		scheduler: scheduler,
		logger:    logging.NewComponentLogger(logger, "server"),
	}
}

type webhookPayload struct {
	Videos []json.RawMessage `json:"videos"`
	Data   []json.RawMessage `json:"data"`
	SRT    string            `json:"srt"`
}

// Webhook accepts a clip-list submission, registers a task, and schedules it.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid webhook: expected a JSON object")
		return
	}

	clips := payload.Videos
	if clips == nil {
		clips = payload.Data
	}
	if clips == nil {
		h.writeError(w, http.StatusBadRequest, "invalid webhook: missing 'videos' or 'data' array")
		return
	}
	if len(clips) == 0 {
		h.writeError(w, http.StatusBadRequest, "clip list is empty")
		return
	}

	descriptors := make([]clip.Descriptor, 0, len(clips))
	for i, raw := range clips {
		descriptor, err := clip.Decode(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid clip descriptor at index %d", i))
			return
		}
		descriptors = append(descriptors, descriptor)
	}

	t := task.New(uuid.New().String(), descriptors, payload.SRT)
	if err := h.registry.Add(t); err != nil {
		h.logger.Error("cannot register task", logging.Error(err))
		h.writeError(w, http.StatusInternalServerError, "cannot register task")
		return
	}

	if err := h.scheduler.Submit(t.ID); err != nil {
		h.logger.Warn("task submission rejected",
			logging.String(logging.FieldTaskID, t.ID),
			logging.Error(err))
		if failErr := h.registry.Fail(t.ID, "submission rejected: "+err.Error()); failErr != nil {
			h.logger.Error("cannot fail rejected task", logging.Error(failErr))
		}
		if errors.Is(err, pipeline.ErrQueueFull) {
			h.writeError(w, http.StatusServiceUnavailable, "task queue full, retry later")
			return
		}
		h.writeError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}

	h.logger.Info("task accepted",
		logging.String(logging.FieldTaskID, t.ID),
		logging.Int("clips", t.VideoCount),
		logging.Bool("custom_subtitles", t.HasCustomSubtitles))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"task_id":              t.ID,
		"status":               string(task.StatusProcessing),
		"message":              fmt.Sprintf("processing %d clips", t.VideoCount),
		"video_count":          t.VideoCount,
		"has_custom_subtitles": t.HasCustomSubtitles,
	})
}

// Status reports the current snapshot of one task.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	t, ok := h.registry.Get(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "task not found")
		return
	}
	h.writeJSON(w, http.StatusOK, statusResponse(t))
}

// Tasks lists snapshots of every known task, newest first.
func (h *Handlers) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks := h.registry.List()
	out := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, statusResponse(t))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"count": len(out),
		"tasks": out,
	})
}

// Download streams the finished video as an attachment.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	t, ok := h.registry.Get(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if t.Status != task.StatusCompleted {
		h.writeError(w, http.StatusBadRequest, "video not ready yet")
		return
	}
	if _, err := os.Stat(t.OutputFile); err != nil {
		h.writeError(w, http.StatusNotFound, "output file not found")
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("final_%s.mp4", id)))
	http.ServeFile(w, r, t.OutputFile)
}

// Health is a liveness probe.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func statusResponse(t *task.Task) map[string]any {
	response := map[string]any{
		"task_id":              t.ID,
		"status":               string(t.Status),
		"progress":             t.Progress,
		"created_at":           t.CreatedAt.Format(time.RFC3339),
		"video_count":          t.VideoCount,
		"has_custom_subtitles": t.HasCustomSubtitles,
	}
	if t.Status == task.StatusCompleted {
		response["download_url"] = "/download/" + t.ID
		response["output_file"] = t.OutputFile
	}
	if t.Status == task.StatusError {
		message := t.Error
		if strings.TrimSpace(message) == "" {
			message = "unknown error"
		}
		response["error"] = message
	}
	if len(t.Warnings) > 0 {
		response["warnings"] = t.Warnings
	}
	return response
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("cannot write response", logging.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]any{
		"error":  message,
		"status": "error",
	})
}
