package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sikes-relay/internal/config"
	"sikes-relay/internal/entities"
	"sikes-relay/internal/interfaces"
	"sikes-relay/internal/usecases"
)

type Handler struct {
	consultation *usecases.ConsultationService
	relay        *usecases.RelayService
	users        interfaces.UserStore
	fktps        interfaces.FKTPStore
	requests     interfaces.RequestStore
	cfg          *config.Config
}

func NewHandler(consultation *usecases.ConsultationService, relay *usecases.RelayService,
	users interfaces.UserStore, fktps interfaces.FKTPStore, requests interfaces.RequestStore,
	cfg *config.Config) *Handler {
	return &Handler{
		consultation: consultation,
		relay:        relay,
		users:        users,
		fktps:        fktps,
		requests:     requests,
		cfg:          cfg,
	}
}

func SetupRoutes(r *gin.Engine, h *Handler, middleware *Middleware) {
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20)) // 1MB max request size
	r.Use(middleware.CORSMiddleware())

	// Tool endpoints called by the AI orchestrator
	r.GET("/check_role", h.CheckRole)
	r.GET("/check_user", h.CheckUser)
	r.POST("/register_user", h.RegisterUser)
	r.POST("/notify_fktp", h.NotifyFKTP)
	r.GET("/get_fktp_reply", h.GetFKTPReply)
	r.POST("/store_fktp_reply", h.StoreFKTPReply)
	r.POST("/send_to_patient", h.SendToPatient)

	// Read-only lookups
	r.GET("/db_user_by_phone", h.DBUserByPhone)
	r.GET("/db_fktp_by_id", h.DBFKTPByID)
	r.GET("/db_fktp_by_name", h.DBFKTPByName)
	r.GET("/db_list_fktp", h.DBListFKTP)
	r.GET("/db_request_by_id", h.DBRequestByID)

	// Gateway webhook
	r.POST("/bot", middleware.RateLimitPerClient(10, 20), h.HandleWebhook)

	r.GET("/health", h.Health)
}

// CheckRole resolves a phone to either a clinic or a patient. Unknown
// phones are plain patients.
func (h *Handler) CheckRole(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, fieldErrors(errMissingParam("phone")))
		return
	}
	phone = entities.NormalizePhone(phone)

	fktp, err := h.fktps.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if fktp != nil {
		c.JSON(http.StatusOK, gin.H{"role": "fktp", "fktp_id": fktp.ID, "fktp_name": fktp.Name})
		return
	}

	user, err := h.users.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user != nil {
		c.JSON(http.StatusOK, gin.H{"role": "patient", "user_id": user.ID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": "patient"})
}

func (h *Handler) CheckUser(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, fieldErrors(errMissingParam("phone")))
		return
	}
	phone = entities.NormalizePhone(phone)

	user, err := h.users.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"registered": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registered":  true,
		"user_id":     user.ID,
		"name":        user.Name,
		"bpjs_number": user.BPJSNumber,
		"fktp_id":     user.FKTPID,
	})
}

type registerUserRequest struct {
	Phone      string `json:"phone" binding:"required"`
	Name       string `json:"name"`
	BPJSNumber string `json:"bpjs_number"`
	FKTPID     *int   `json:"fktp_id"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	result, err := h.consultation.RegisterUser(c.Request.Context(), req.Phone, req.Name, req.BPJSNumber, req.FKTPID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": result.Status, "user_id": result.UserID})
}

type notifyFKTPRequest struct {
	UserID       *int   `json:"user_id"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	BPJSNumber   string `json:"bpjs_number"`
	FKTPID       int    `json:"fktp_id" binding:"required"`
	Message      string `json:"message" binding:"required"`
}

func (h *Handler) NotifyFKTP(c *gin.Context) {
	var req notifyFKTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	result, err := h.consultation.NotifyFKTP(c.Request.Context(), usecases.NotifyInput{
		UserID:       req.UserID,
		PatientPhone: req.PatientPhone,
		BPJSNumber:   req.BPJSNumber,
		FKTPID:       req.FKTPID,
		Message:      req.Message,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Status == "failed" {
		c.JSON(http.StatusOK, gin.H{"status": "failed", "reason": result.Reason})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": result.Status, "request_id": result.RequestID})
}

func (h *Handler) GetFKTPReply(c *gin.Context) {
	requestID := c.Query("request_id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, fieldErrors(errMissingParam("request_id")))
		return
	}

	req, err := h.requests.GetByRequestID(c.Request.Context(), requestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if req == nil {
		c.JSON(http.StatusOK, gin.H{"status": "not_found"})
		return
	}
	if req.Status == entities.RequestStatusPending {
		c.JSON(http.StatusOK, gin.H{"status": "pending"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "replied", "raw_reply": req.RawReply})
}

type storeReplyRequest struct {
	RequestID      string `json:"request_id" binding:"required"`
	RawReply       string `json:"raw_reply" binding:"required"`
	FormattedReply string `json:"formatted_reply"`
}

func (h *Handler) StoreFKTPReply(c *gin.Context) {
	var req storeReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	result, err := h.consultation.StoreReply(c.Request.Context(), req.RequestID, req.RawReply, req.FormattedReply)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.Status == "not_found" {
		c.JSON(http.StatusOK, gin.H{"status": "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": result.Status, "patient_phone": result.PatientPhone})
}

type sendPatientRequest struct {
	PatientPhone string `json:"patient_phone" binding:"required"`
	Message      string `json:"message" binding:"required"`
}

func (h *Handler) SendToPatient(c *gin.Context) {
	var req sendPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	if err := h.consultation.SendToPatient(c.Request.Context(), req.PatientPhone, req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (h *Handler) DBUserByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, fieldErrors(errMissingParam("phone")))
		return
	}
	phone = entities.NormalizePhone(phone)

	user, err := h.users.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":      true,
		"user_id":     user.ID,
		"phone":       user.Phone,
		"name":        user.Name,
		"bpjs_number": user.BPJSNumber,
		"fktp_id":     user.FKTPID,
	})
}

func (h *Handler) DBFKTPByID(c *gin.Context) {
	fktpID, err := strconv.Atoi(c.Query("fktp_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(errMissingParam("fktp_id")))
		return
	}

	fktp, err := h.fktps.GetByID(c.Request.Context(), fktpID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if fktp == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}

	c.JSON(http.StatusOK, fktpPayload(fktp))
}

func (h *Handler) DBFKTPByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}

	fktp, err := h.fktps.SearchByName(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if fktp == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}

	c.JSON(http.StatusOK, fktpPayload(fktp))
}

func (h *Handler) DBListFKTP(c *gin.Context) {
	fktps, err := h.fktps.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data := make([]gin.H, 0, len(fktps))
	for _, f := range fktps {
		data = append(data, gin.H{"id": f.ID, "name": f.Name, "alamat": f.Alamat, "phone": f.Phone})
	}
	c.JSON(http.StatusOK, gin.H{"fktp": data})
}

func (h *Handler) DBRequestByID(c *gin.Context) {
	requestID := c.Query("request_id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, fieldErrors(errMissingParam("request_id")))
		return
	}

	req, err := h.requests.GetByRequestID(c.Request.Context(), requestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if req == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":          true,
		"request_id":      req.RequestID,
		"user_id":         req.UserID,
		"patient_phone":   req.PatientPhone,
		"fktp_id":         req.FKTPID,
		"bpjs_number":     req.BPJSNumber,
		"message":         req.Message,
		"status":          req.Status,
		"raw_reply":       req.RawReply,
		"formatted_reply": req.FormattedReply,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"db":      h.cfg.DatabaseURL,
		"flowise": h.cfg.PredictionURL,
		"waha":    h.cfg.GatewaySendURL,
	})
}

func fktpPayload(f *entities.FKTP) gin.H {
	return gin.H{
		"exists": true,
		"id":     f.ID,
		"name":   f.Name,
		"alamat": f.Alamat,
		"phone":  f.Phone,
	}
}
