package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/claimflow/internal/application/service"
	"github.com/campusworks/claimflow/internal/domain/claim"
)

// Request headers carrying the caller's identity, filled in by the
// surrounding identity provider.
const (
	headerActorRole = "X-Actor-Role"
	headerActorID   = "X-Actor-Id"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	claimService     service.ClaimService
	lifecycleService service.LifecycleService
	reportService    service.ReportService
	reportsDir       string
	logger           Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	claimService service.ClaimService,
	lifecycleService service.LifecycleService,
	reportService service.ReportService,
	reportsDir string,
	logger Logger,
) *Handlers {
	return &Handlers{
		claimService:     claimService,
		lifecycleService: lifecycleService,
		reportService:    reportService,
		reportsDir:       reportsDir,
		logger:           logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateClaimRequest is the payload for POST /api/claims
type CreateClaimRequest struct {
	LecturerID  string  `json:"lecturer_id" binding:"required"`
	ProfileID   *string `json:"profile_id"`
	Title       string  `json:"title" binding:"required"`
	Notes       string  `json:"notes"`
	ModuleName  string  `json:"module_name"`
	ModuleCode  string  `json:"module_code"`
	FilePath    string  `json:"file_path"`
	HoursWorked float64 `json:"hours_worked" binding:"required"`
	HourlyRate  float64 `json:"hourly_rate" binding:"required"`
}

// StatusUpdateRequest is the payload for POST /api/claims/:id/status
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// BatchApproveRequest is the payload for POST /api/claims/batch-approve
type BatchApproveRequest struct {
	ClaimIDs []string `json:"claim_ids" binding:"required"`
}

// ClaimResponse represents a claim in API responses
type ClaimResponse struct {
	ID            string                 `json:"id"`
	LecturerID    string                 `json:"lecturer_id"`
	Title         string                 `json:"title"`
	Notes         string                 `json:"notes,omitempty"`
	ModuleName    string                 `json:"module_name,omitempty"`
	ModuleCode    string                 `json:"module_code,omitempty"`
	FilePath      string                 `json:"file_path,omitempty"`
	HoursWorked   float64                `json:"hours_worked"`
	HourlyRate    float64                `json:"hourly_rate"`
	Amount        float64                `json:"amount"`
	Status        string                 `json:"status"`
	DateSubmitted string                 `json:"date_submitted"`
	UpdatedAt     *string                `json:"updated_at,omitempty"`
	Profile       *claim.LecturerProfile `json:"profile,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// CreateClaim handles POST /api/claims
func (h *Handlers) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	created, err := h.claimService.Create(c.Request.Context(), &claim.Claim{
		LecturerID:  req.LecturerID,
		ProfileID:   req.ProfileID,
		Title:       req.Title,
		Notes:       req.Notes,
		ModuleName:  req.ModuleName,
		ModuleCode:  req.ModuleCode,
		FilePath:    req.FilePath,
		HoursWorked: req.HoursWorked,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		h.logger.Error("Failed to create claim", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to create claim"})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: toClaimResponse(created)})
}

// ListClaims handles GET /api/claims; output is filtered for the viewer
func (h *Handlers) ListClaims(c *gin.Context) {
	claims, err := h.claimService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve claims"})
		return
	}

	viewerRole := claim.ParseRole(c.GetHeader(headerActorRole))
	viewerID := c.GetHeader(headerActorID)
	claims = h.claimService.FilterForViewer(claims, viewerRole, viewerID)

	responses := make([]ClaimResponse, 0, len(claims))
	for _, cl := range claims {
		responses = append(responses, toClaimResponse(cl))
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: responses})
}

// GetClaim handles GET /api/claims/:id
func (h *Handlers) GetClaim(c *gin.Context) {
	cl, err := h.claimService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve claim"})
		return
	}
	if cl == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "claim not found"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: toClaimResponse(cl)})
}

// UpdateClaimStatus handles POST /api/claims/:id/status
func (h *Handlers) UpdateClaimStatus(c *gin.Context) {
	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "status is required"})
		return
	}

	ok, err := h.claimService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to update status"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "claim not found or status invalid"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// DeleteClaim handles DELETE /api/claims/:id
func (h *Handlers) DeleteClaim(c *gin.Context) {
	deleted, err := h.claimService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to delete claim"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "claim not found"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// AutoVerify handles POST /api/claims/auto-verify
func (h *Handlers) AutoVerify(c *gin.Context) {
	role := h.actorRole(c)

	result, err := h.lifecycleService.AutoVerify(c.Request.Context(), role)
	if err != nil {
		h.logger.Error("Auto-verify failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "auto-verify failed"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// AutoApprove handles POST /api/claims/auto-approve
func (h *Handlers) AutoApprove(c *gin.Context) {
	role := h.actorRole(c)

	result, err := h.lifecycleService.AutoApprove(c.Request.Context(), role)
	if err != nil {
		h.logger.Error("Auto-approve failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "auto-approve failed"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// RejectPending handles POST /api/claims/reject-pending
func (h *Handlers) RejectPending(c *gin.Context) {
	count, err := h.lifecycleService.RejectPending(c.Request.Context())
	if err != nil {
		h.logger.Error("Reject-pending failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "reject-pending failed"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"rejected": count}})
}

// BatchApprove handles POST /api/claims/batch-approve
func (h *Handlers) BatchApprove(c *gin.Context) {
	var req BatchApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "claim_ids is required"})
		return
	}

	result, err := h.lifecycleService.BatchApprove(c.Request.Context(), req.ClaimIDs, c.GetHeader(headerActorID))
	if err != nil {
		h.logger.Error("Batch approve failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "batch approve failed"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// ListLecturerClaims handles GET /api/lecturers/:id/claims
func (h *Handlers) ListLecturerClaims(c *gin.Context) {
	claims, err := h.claimService.GetByLecturer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve claims"})
		return
	}

	responses := make([]ClaimResponse, 0, len(claims))
	for _, cl := range claims {
		responses = append(responses, toClaimResponse(cl))
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: responses})
}

// ListProfiles handles GET /api/profiles. Unlike the lecturer report this
// includes lecturers with no claims on record.
func (h *Handlers) ListProfiles(c *gin.Context) {
	profiles, err := h.claimService.ListProfiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve profiles"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: profiles})
}

// SaveProfile handles PUT /api/profiles/:id
func (h *Handlers) SaveProfile(c *gin.Context) {
	var p claim.LecturerProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}
	p.ID = c.Param("id")

	saved, err := h.claimService.SaveProfile(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: saved})
}

// GetProfile handles GET /api/profiles/:id
func (h *Handlers) GetProfile(c *gin.Context) {
	p, err := h.claimService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve profile"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "profile not found"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: p})
}

// ReportSummary handles GET /api/reports/summary
func (h *Handlers) ReportSummary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: summary})
}

// ReportLecturers handles GET /api/reports/lecturers
func (h *Handlers) ReportLecturers(c *gin.Context) {
	summaries, err := h.reportService.LecturerSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to build lecturer summary"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: summaries})
}

// ReportMonthly handles GET /api/reports/monthly?month=&year=
func (h *Handlers) ReportMonthly(c *gin.Context) {
	month, year, ok := h.monthYear(c)
	if !ok {
		return
	}

	report, err := h.reportService.MonthlyReport(c.Request.Context(), month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to build monthly report"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// ExportMonthly handles POST /api/reports/monthly/export?month=&year=
func (h *Handlers) ExportMonthly(c *gin.Context) {
	month, year, ok := h.monthYear(c)
	if !ok {
		return
	}

	path := filepath.Join(h.reportsDir, fmt.Sprintf("claims_%04d_%02d.xlsx", year, month))
	if err := h.reportService.ExportMonthlyReport(c.Request.Context(), month, year, path); err != nil {
		h.logger.Error("Report export failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "report export failed"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"path": path}})
}

// actorRole resolves the caller's role from header or query. Blank or
// unrecognized values fall through to the Unknown role, which the policy
// treats as Coordinator.
func (h *Handlers) actorRole(c *gin.Context) claim.Role {
	raw := c.GetHeader(headerActorRole)
	if raw == "" {
		raw = c.Query("role")
	}
	return claim.ParseRole(raw)
}

func (h *Handlers) monthYear(c *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid month"})
		return 0, 0, false
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid year"})
		return 0, 0, false
	}

	return month, year, true
}

// toClaimResponse converts a domain claim to its API shape; the amount is
// derived here, per read
func toClaimResponse(cl *claim.Claim) ClaimResponse {
	resp := ClaimResponse{
		ID:            cl.ID,
		LecturerID:    cl.LecturerID,
		Title:         cl.Title,
		Notes:         cl.Notes,
		ModuleName:    cl.ModuleName,
		ModuleCode:    cl.ModuleCode,
		FilePath:      cl.FilePath,
		HoursWorked:   cl.HoursWorked,
		HourlyRate:    cl.HourlyRate,
		Amount:        cl.Amount(),
		Status:        cl.Status.String(),
		DateSubmitted: cl.DateSubmitted.Format(time.RFC3339),
		Profile:       cl.Profile,
	}

	if cl.UpdatedAt != nil {
		updated := cl.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}

	return resp
}
