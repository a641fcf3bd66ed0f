package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"verification-platform/internal/domain/verification"
	verificationUC "verification-platform/internal/usecase/verification"
)

type VerificationHandler struct {
	uc  *verificationUC.Usecase
	log logrus.FieldLogger
}

func NewVerificationHandler(uc *verificationUC.Usecase, log logrus.FieldLogger) *VerificationHandler {
	return &VerificationHandler{uc: uc, log: log}
}

// Raw values are passed through untouched; date and set checks belong to
// the engine, which reports them as discrepancies.
type rawRecordReq struct {
	StartDate     string `json:"start_date"     validate:"required"`
	EndDate       string `json:"end_date"`
	Status        string `json:"status"`
	Rank          string `json:"rank"`
	Designation   string `json:"designation"`
	ServiceBranch string `json:"service_branch"`
}

type verifyReq struct {
	Submitted rawRecordReq `json:"submitted"`
	Extracted rawRecordReq `json:"extracted"`
}

// Verify reconciles two records without a session.
func (h *VerificationHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Verify(c.Request().Context(), verificationUC.VerifyInput{
		Submitted: verification.RawRecord(req.Submitted),
		Extracted: verification.RawRecord(req.Extracted),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
