package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"verification-platform/internal/domain/extraction"
	"verification-platform/internal/domain/verification"
	"verification-platform/internal/usecase/session"
)

// DocumentField is the multipart field carrying the uploaded document.
const DocumentField = "document"

type SessionHandler struct {
	uc        *session.Usecase
	log       logrus.FieldLogger
	maxUpload int64
}

func NewSessionHandler(uc *session.Usecase, log logrus.FieldLogger, maxUpload int64) *SessionHandler {
	return &SessionHandler{uc: uc, log: log, maxUpload: maxUpload}
}

type loginReq struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

type sessionPath struct {
	SessionID string `json:"session_id" validate:"hex32"`
}

type submissionReq struct {
	StartDate     string `json:"start_date"     validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date"       validate:"omitempty,datetime=2006-01-02"`
	Status        string `json:"status"         validate:"status"`
	Rank          string `json:"rank"           validate:"required"`
	Designation   string `json:"designation"    validate:"required"`
	ServiceBranch string `json:"service_branch" validate:"required"`
}

// sessionID validates the path param; ok is false once a response was sent.
func (h *SessionHandler) sessionID(c echo.Context) (string, bool, error) {
	p := sessionPath{SessionID: c.Param("session_id")}
	if err := c.Validate(&p); err != nil {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid session_id path param",
			Details: ToFieldErrors(err),
		})
	}
	return p.SessionID, true, nil
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Login(c.Request().Context(), session.LoginInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	id, ok, err := h.sessionID(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Submit records the submission form ("Proceed").
func (h *SessionHandler) Submit(c echo.Context) error {
	id, ok, err := h.sessionID(c)
	if !ok {
		return err
	}
	var req submissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), id, verification.RawRecord(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// UploadDocument verifies the uploaded document against the submission.
func (h *SessionHandler) UploadDocument(c echo.Context) error {
	id, ok, err := h.sessionID(c)
	if !ok {
		return err
	}
	fh, err := c.FormFile(DocumentField)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid body",
			Details: []FieldError{{Field: DocumentField, Message: "is required"}},
		})
	}
	if fh.Size > h.maxUpload {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("document larger than %d bytes", h.maxUpload),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload))
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("read upload: %w", err))
	}

	dto, err := h.uc.VerifyDocument(c.Request().Context(), id, extraction.Document{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Close ends the session.
func (h *SessionHandler) Close(c echo.Context) error {
	id, ok, err := h.sessionID(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Close(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
