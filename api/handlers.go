package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/certqr/constant"
	"github.com/prasetyowira/certqr/domain/certificate"
	appLogger "github.com/prasetyowira/certqr/infrastructure/logger"
)

// QR code size bounds for the image endpoint, in pixels
const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// maxIssueBody bounds the issue request body
const maxIssueBody = 1 << 20

// CertificateService is the part of certificate.Service the handlers use
type CertificateService interface {
	Issue(ctx context.Context, req certificate.IssueRequest) (*certificate.Artifacts, error)
	Lookup(ctx context.Context, certificateNo string) (*certificate.Issued, error)
	List(ctx context.Context) ([]certificate.Issued, error)
	RenderPage(ctx context.Context, certificateNo string) ([]byte, error)
}

// QRRenderer renders fixed-size QR code images
type QRRenderer interface {
	PNG(content string, size int) ([]byte, error)
}

// Handler contains service dependencies for API handlers
type Handler struct {
	service   CertificateService
	codes     QRRenderer
	baseURL   string
	outputDir string
}

// IssueCertificateRequest is the request object for the IssueCertificate endpoint.
// Certificates are always written to the server's output directory.
type IssueCertificateRequest struct {
	Certificate certificate.Record `json:"certificate"`
	BaseURL     string             `json:"base_url,omitempty"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler. baseURL and outputDir apply to every
// certificate issued through the API unless a request overrides the base URL.
func NewHandler(service CertificateService, codes QRRenderer, baseURL, outputDir string) *Handler {
	return &Handler{
		service:   service,
		codes:     codes,
		baseURL:   baseURL,
		outputDir: outputDir,
	}
}

// IssueCertificate renders and stores a certificate and its QR code
func (h *Handler) IssueCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IssueCertificateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIssueBody)).Decode(&req); err != nil {
		appLogger.CtxWarn(ctx, "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxIssueHandler,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	baseURL := req.BaseURL
	if baseURL == "" {
		baseURL = h.baseURL
	}

	artifacts, err := h.service.Issue(ctx, certificate.IssueRequest{
		Certificate: req.Certificate,
		BaseURL:     baseURL,
		OutputDir:   h.outputDir,
	})
	if err != nil {
		h.writeServiceError(w, r, constant.CtxIssueHandler, err)
		return
	}

	WriteJSON(w, artifacts, http.StatusCreated)
}

// ListCertificates returns every issued certificate
func (h *Handler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	issued, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, constant.CtxListHandler, err)
		return
	}
	WriteJSON(w, issued, http.StatusOK)
}

// GetCertificate returns the registry entry of one certificate
func (h *Handler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	issued, err := h.service.Lookup(r.Context(), chi.URLParam(r, "certificateNo"))
	if err != nil {
		h.writeServiceError(w, r, constant.CtxGetCertificate, err)
		return
	}
	WriteJSON(w, issued, http.StatusOK)
}

// GetCertificatePage serves the rendered certificate page
func (h *Handler) GetCertificatePage(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.RenderPage(r.Context(), chi.URLParam(r, "certificateNo"))
	if err != nil {
		h.writeServiceError(w, r, constant.CtxPageHandler, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// GetCertificateQRCode serves a QR code for the certificate's public URL.
// The optional size query parameter selects the image width in pixels.
func (h *Handler) GetCertificateQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	size := DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < MinQRSize || parsed > MaxQRSize {
			WriteJSONError(w, "size must be an integer between 64 and 1024", http.StatusBadRequest)
			return
		}
		size = parsed
	}

	certificateNo := chi.URLParam(r, "certificateNo")
	issued, err := h.service.Lookup(ctx, certificateNo)
	if err != nil {
		h.writeServiceError(w, r, constant.CtxQRCodeHandler, err)
		return
	}

	png, err := h.codes.PNG(issued.URL, size)
	if err != nil {
		appLogger.CtxError(ctx, "Failed to render QR code", appLogger.LoggerInfo{
			ContextFunction: constant.CtxQRCodeHandler,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIQRCode,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataCertificateNo: certificateNo,
			},
		})
		WriteJSONError(w, "Failed to render QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// writeServiceError maps service errors to HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, certificate.ErrInvalidRecord), errors.Is(err, certificate.ErrCapacityExceeded):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, certificate.ErrNotFound):
		status = http.StatusNotFound
		message = constant.ErrCertificateNotFound
	case errors.Is(err, certificate.ErrRegistryDisabled):
		status = http.StatusServiceUnavailable
		message = constant.ErrRegistryDisabled
	}

	if status >= http.StatusInternalServerError {
		appLogger.CtxError(r.Context(), "Certificate service error", appLogger.LoggerInfo{
			ContextFunction: fn,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
	}

	WriteJSONError(w, message, status)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
