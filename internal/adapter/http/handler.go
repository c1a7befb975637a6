package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/clipr/internal/adapter/http/ratelimit"
	"github.com/bnema/clipr/internal/domain"
	"github.com/bnema/clipr/internal/infrastructure/logger"
	"github.com/bnema/clipr/internal/service"
)

const maxRequestBody = 64 << 10

type JobService interface {
	Create(ctx context.Context, videoURL, userID string) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, []domain.Clip, error)
	Cancel(ctx context.Context, id string) error
}

type Handlers struct {
	jobSvc      JobService
	limiter     *ratelimit.Limiter
	behindProxy bool
}

func NewHandlers(jobSvc JobService, limiter *ratelimit.Limiter, behindProxy bool) *Handlers {
	return &Handlers{
		jobSvc:      jobSvc,
		limiter:     limiter,
		behindProxy: behindProxy,
	}
}

type createJobRequest struct {
	VideoURL string `json:"video_url"`
	UserID   string `json:"user_id"`
}

type jobResponse struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id,omitempty"`
	VideoURL      string         `json:"video_url"`
	VideoTitle    string         `json:"video_title,omitempty"`
	VideoDuration float64        `json:"video_duration,omitempty"`
	Status        string         `json:"status"`
	Progress      int            `json:"progress"`
	CurrentStep   string         `json:"current_step,omitempty"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	ClipsCreated  int            `json:"clips_created"`
	CreatedAt     time.Time      `json:"created_at"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	Clips         []clipResponse `json:"clips,omitempty"`
}

type clipResponse struct {
	ID              string   `json:"id"`
	Filename        string   `json:"filename"`
	SuggestedTitle  string   `json:"suggested_title,omitempty"`
	StartTime       float64  `json:"start_time"`
	EndTime         float64  `json:"end_time"`
	Duration        float64  `json:"duration"`
	ViralScore      float64  `json:"viral_score"`
	CriteriaMatched []string `json:"criteria_matched"`
	Reasoning       string   `json:"reasoning,omitempty"`
	FileSize        int64    `json:"file_size"`
}

func newJobResponse(job *domain.Job, clips []domain.Clip) jobResponse {
	resp := jobResponse{
		ID:            job.ID,
		UserID:        job.UserID,
		VideoURL:      job.VideoURL,
		VideoTitle:    job.VideoTitle,
		VideoDuration: job.VideoDuration,
		Status:        string(job.Status),
		Progress:      job.Progress,
		CurrentStep:   job.CurrentStep,
		ErrorMessage:  job.ErrorMessage,
		ClipsCreated:  job.ClipsCreated,
		CreatedAt:     job.CreatedAt,
	}
	if job.StartedAt.Valid {
		t := job.StartedAt.Time
		resp.StartedAt = &t
	}
	if job.CompletedAt.Valid {
		t := job.CompletedAt.Time
		resp.CompletedAt = &t
	}
	for _, c := range clips {
		criteria := c.CriteriaMatched
		if criteria == nil {
			criteria = []string{}
		}
		resp.Clips = append(resp.Clips, clipResponse{
			ID:              c.ID,
			Filename:        c.Filename,
			SuggestedTitle:  c.SuggestedTitle,
			StartTime:       c.StartTime,
			EndTime:         c.EndTime,
			Duration:        c.Duration,
			ViralScore:      c.ViralScore,
			CriteriaMatched: criteria,
			Reasoning:       c.Reasoning,
			FileSize:        c.FileSize,
		})
	}
	return resp
}

func (h *Handlers) CreateJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.limiter != nil {
			if ok, wait := h.limiter.Allow(clientIP(r, h.behindProxy)); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
				writeError(w, http.StatusTooManyRequests, "Too many job submissions, try again later")
				return
			}
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req createJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		job, err := h.jobSvc.Create(r.Context(), req.VideoURL, strings.TrimSpace(req.UserID))
		if err != nil {
			if errors.Is(err, service.ErrInvalidURL) {
				writeError(w, http.StatusBadRequest, "video_url must be an http or https URL")
				return
			}
			logger.Error.Printf("create job error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create job")
			return
		}

		w.Header().Set("Location", "/jobs/"+job.ID)
		writeJSON(w, http.StatusCreated, newJobResponse(job, nil))
	}
}

func (h *Handlers) GetJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, clips, err := h.jobSvc.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Job not found")
				return
			}
			logger.Error.Printf("get job error: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to load job")
			return
		}
		writeJSON(w, http.StatusOK, newJobResponse(job, clips))
	}
}

func (h *Handlers) CancelJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		err := h.jobSvc.Cancel(r.Context(), id)
		switch {
		case err == nil:
			writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "status": "cancelling"})
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Job not found")
		case errors.Is(err, service.ErrAlreadyFinished):
			writeError(w, http.StatusConflict, "Job already finished")
		default:
			logger.Error.Printf("cancel job %s error: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Failed to cancel job")
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// clientIP trusts X-Forwarded-For only when running behind a proxy.
func clientIP(r *http.Request, behindProxy bool) string {
	if behindProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
