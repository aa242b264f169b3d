package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_directory/internal/controller"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/query"
	"github.com/locvowork/employee_directory/internal/service"
	"github.com/locvowork/employee_directory/internal/service/serviceutils"
	"github.com/locvowork/employee_directory/internal/validation"
)

type EmployeeHandler struct {
	svc             *service.EmployeeService
	defaultPageSize int
}

// NewEmployeeHandler serves svc. defaultPageSize is used when a list request names none
// and falls back to query.DefaultPageSize when it is not an allowed size.
func NewEmployeeHandler(svc *service.EmployeeService, defaultPageSize int) *EmployeeHandler {
	if !query.ValidPageSize(defaultPageSize) {
		defaultPageSize = query.DefaultPageSize
	}
	return &EmployeeHandler{svc: svc, defaultPageSize: defaultPageSize}
}

// ListResponse is one derived page plus the pager details the dashboard shows.
type ListResponse struct {
	Items         []domain.Employee `json:"items"`
	TotalMatching int               `json:"totalMatching"`
	TotalPages    int               `json:"totalPages"`
	Page          int               `json:"page"`
	PageSize      int               `json:"pageSize"`
	From          int               `json:"from"`
	To            int               `json:"to"`
	PageLinks     []int             `json:"pageLinks"`
	Params        query.Params      `json:"params"`
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	p, err := h.parseParams(c)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid query parameters", err)
	}

	res := h.svc.List(c.Request().Context(), p)
	from, to := res.Window()
	resp := ListResponse{
		Items:         res.Items,
		TotalMatching: res.TotalMatching,
		TotalPages:    res.TotalPages,
		Page:          res.Page,
		PageSize:      res.PageSize,
		From:          from,
		To:            to,
		PageLinks:     query.PageLinks(res.Page, res.TotalPages, query.MaxPageLinks),
		Params:        p,
	}
	if resp.Items == nil {
		resp.Items = []domain.Employee{}
	}

	msg := "Employees listed successfully"
	if res.TotalMatching == 0 {
		msg = controller.EmptyResultMessage
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, msg, resp)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	emp, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, "Failed to get employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee retrieved successfully", emp)
}

func (h *EmployeeHandler) CreateHandler(c echo.Context) error {
	var req domain.EmployeeInput
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	emp, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return h.storeError(c, "Failed to create employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employee created successfully", emp)
}

func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	var req domain.EmployeeInput
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	emp, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return h.storeError(c, "Failed to update employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee updated successfully", emp)
}

// DeleteHandler removes a record only when the request carries confirm=true.
func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid employee ID", err)
	}

	ctx := c.Request().Context()
	if !queryConfirmer(c).Confirm(ctx, controller.DeletePrompt) {
		return serviceutils.ResponseError(c, http.StatusPreconditionRequired, controller.DeletePrompt,
			errors.New("repeat the request with confirm=true"))
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		return h.storeError(c, "Failed to delete employee", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employee deleted successfully", nil)
}

const exportFilename = "employees.xlsx"

// ExportHandler streams every record matching the list parameters as an xlsx workbook.
func (h *EmployeeHandler) ExportHandler(c echo.Context) error {
	p, err := h.parseParams(c)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid query parameters", err)
	}

	ctx := c.Request().Context()
	exporter, n, err := h.svc.PrepareExport(ctx, p)
	if err != nil {
		logger.ErrorLog(ctx, "export failed", err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate excel file", err)
	}

	if err := exporter.StreamToResponse(c.Response(), exportFilename); err != nil {
		logger.ErrorLog(ctx, "export failed", err)
		if c.Response().Committed {
			return nil
		}
		c.Response().Header().Del(echo.HeaderContentDisposition)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate excel file", err)
	}
	logger.InfoLog(ctx, "streamed %d employees as %s", n, exportFilename)
	return nil
}

func (h *EmployeeHandler) HealthHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", map[string]int{
		"employees": h.svc.Count(c.Request().Context()),
	})
}

func (h *EmployeeHandler) storeError(c echo.Context, msg string, err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return serviceutils.ResponseError(c, http.StatusUnprocessableEntity, "Validation failed", err, verrs)
	case errors.Is(err, domain.ErrNotFound):
		logger.WarnLog(c.Request().Context(), "%s: %v", msg, err)
		return serviceutils.ResponseError(c, http.StatusNotFound, "Employee not found", err)
	default:
		logger.ErrorLog(c.Request().Context(), msg, err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, msg, err)
	}
}

// parseParams reads the list parameters. Filters accept "all" for no filter.
func (h *EmployeeHandler) parseParams(c echo.Context) (query.Params, error) {
	p := query.DefaultParams()
	p.PageSize = h.defaultPageSize
	p.Search = c.QueryParam("search")
	p.Filters = query.Filters{
		Department: c.QueryParam("department"),
		Role:       c.QueryParam("role"),
		FirstName:  c.QueryParam("firstName"),
	}.Normalize()

	var err error
	if p.SortKey, err = query.ParseSortKey(c.QueryParam("sortBy")); err != nil {
		return p, err
	}
	if p.SortOrder, err = query.ParseSortOrder(c.QueryParam("sortOrder")); err != nil {
		return p, err
	}

	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("page: %w", err)
		}
		if n > 1 {
			p.Page = n
		}
	}
	if v := c.QueryParam("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !query.ValidPageSize(n) {
			return p, fmt.Errorf("%w: %s", query.ErrInvalidPageSize, v)
		}
		p.PageSize = n
	}
	return p, nil
}

func queryConfirmer(c echo.Context) controller.Confirmer {
	confirmed, _ := strconv.ParseBool(strings.TrimSpace(c.QueryParam("confirm")))
	return controller.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		logger.DebugLog(ctx, "%q answered %v by request", prompt, confirmed)
		return confirmed
	})
}
