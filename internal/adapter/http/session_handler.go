package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pf-loan-generator/internal/domain/application"
	"pf-loan-generator/internal/usecase/session"
)

type SessionHandler struct{ uc *session.Usecase }

func NewSessionHandler(uc *session.Usecase) *SessionHandler { return &SessionHandler{uc: uc} }

// patchSessionReq carries only the fields being edited. Amounts are free
// text; malformed ones are shown as typed.
type patchSessionReq struct {
	EmployeeName *string `json:"employee_name"  validate:"omitnil,max=120"`
	EBNumber     *string `json:"eb_number"      validate:"omitnil,max=40"`
	Department   *string `json:"department"     validate:"omitnil,max=120"`
	LoanAmount   *string `json:"loan_amount"    validate:"omitnil,max=40"`
	LoanReason   *string `json:"loan_reason"    validate:"omitnil,loanreason"`
	CustomReason *string `json:"custom_reason"  validate:"omitnil,max=200"`
	MobileNumber *string `json:"mobile_number"  validate:"omitnil,max=20"`
}

func (r patchSessionReq) patch() map[application.Field]string {
	out := map[application.Field]string{}
	set := func(f application.Field, v *string) {
		if v != nil {
			out[f] = *v
		}
	}
	set(application.FieldEmployeeName, r.EmployeeName)
	set(application.FieldEBNumber, r.EBNumber)
	set(application.FieldDepartment, r.Department)
	set(application.FieldLoanAmount, r.LoanAmount)
	set(application.FieldLoanReason, r.LoanReason)
	set(application.FieldCustomReason, r.CustomReason)
	set(application.FieldMobileNumber, r.MobileNumber)
	return out
}

func (h *SessionHandler) CreateSession(c echo.Context) error {
	dto, err := h.uc.Start(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SessionHandler) PatchSession(c echo.Context) error {
	var req patchSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("id"), req.patch())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SessionHandler) GetLetter(c echo.Context) error {
	l, _, err := h.uc.Letter(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
