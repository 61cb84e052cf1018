package http

import (
	"net/http"

	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/pkg/claimsdk"
	"github.com/aussiebroadwan/claims/pkg/httpx"
)

// ExpensesHandler serves the expense lifecycle.
type ExpensesHandler struct {
	Expenses *service.ExpenseService
}

// HandleCreate godoc
//
//	@Summary		Submit an expense
//	@Description	Creates a PENDING expense owned by the caller. Amount may be a JSON number or a decimal string.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		claimsdk.CreateExpenseRequest		true	"Expense details"
//	@Success		201		{object}	claimsdk.Expense
//	@Failure		400		{object}	claimsdk.ValidationErrorResponse	"Invalid fields"
//	@Failure		401		{object}	claimsdk.ErrorResponse				"Missing or invalid token"
//	@Router			/v1/expenses [post]
func (h *ExpensesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req claimsdk.CreateExpenseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	view, err := h.Expenses.Create(r.Context(), caller, service.CreateExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		ExpenseDate: req.ExpenseDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toExpense(view))
}

// HandleList godoc
//
//	@Summary		List expenses
//	@Description	Employees see their own expenses, admins see all. Newest first.
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Param			category	query		string	false	"Category filter"
//	@Param			status		query		string	false	"Status filter"
//	@Param			start_date	query		string	false	"Inclusive lower bound (YYYY-MM-DD)"
//	@Param			end_date	query		string	false	"Inclusive upper bound (YYYY-MM-DD)"
//	@Success		200			{object}	claimsdk.ExpenseList
//	@Failure		400			{object}	claimsdk.ValidationErrorResponse	"Invalid filter"
//	@Failure		401			{object}	claimsdk.ErrorResponse				"Missing or invalid token"
//	@Router			/v1/expenses [get]
func (h *ExpensesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	q := r.URL.Query()
	views, err := h.Expenses.List(r.Context(), caller, service.ListExpensesInput{
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpenseList(views))
}

// HandlePending godoc
//
//	@Summary		Pending queue
//	@Description	Every PENDING expense, oldest first. Admin only.
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	claimsdk.ExpenseList
//	@Failure		403	{object}	claimsdk.ErrorResponse	"Not an admin"
//	@Router			/v1/expenses/pending [get]
func (h *ExpensesHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	views, err := h.Expenses.ListPending(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpenseList(views))
}

// HandleGet godoc
//
//	@Summary		Get an expense
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Expense ID"
//	@Success		200	{object}	claimsdk.Expense
//	@Failure		403	{object}	claimsdk.ErrorResponse	"Owned by someone else"
//	@Failure		404	{object}	claimsdk.ErrorResponse	"Unknown expense"
//	@Router			/v1/expenses/{id} [get]
func (h *ExpensesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	view, err := h.Expenses.Get(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpense(view))
}

// HandleTransition godoc
//
//	@Summary		Decide an expense
//	@Description	Moves a PENDING expense to APPROVED or REJECTED. Rejections need a reason. Admin only.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Expense ID"
//	@Param			request	body		claimsdk.TransitionRequest			true	"Decision"
//	@Success		200		{object}	claimsdk.Expense
//	@Failure		400		{object}	claimsdk.ValidationErrorResponse	"Invalid target status"
//	@Failure		403		{object}	claimsdk.ErrorResponse				"Not an admin"
//	@Failure		404		{object}	claimsdk.ErrorResponse				"Unknown expense"
//	@Failure		409		{object}	claimsdk.ErrorResponse				"Expense already decided"
//	@Failure		422		{object}	claimsdk.ErrorResponse				"Rejection without a reason"
//	@Router			/v1/expenses/{id}/status [patch]
func (h *ExpensesHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req claimsdk.TransitionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	view, err := h.Expenses.Transition(r.Context(), caller, r.PathValue("id"), service.TransitionInput{
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpense(view))
}

// HandleApprove godoc
//
//	@Summary		Approve an expense
//	@Tags			Expenses
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Expense ID"
//	@Success		200	{object}	claimsdk.Expense
//	@Failure		403	{object}	claimsdk.ErrorResponse	"Not an admin"
//	@Failure		404	{object}	claimsdk.ErrorResponse	"Unknown expense"
//	@Failure		409	{object}	claimsdk.ErrorResponse	"Expense already decided"
//	@Router			/v1/expenses/{id}/approve [post]
func (h *ExpensesHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	view, err := h.Expenses.Approve(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpense(view))
}

// HandleReject godoc
//
//	@Summary		Reject an expense
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Expense ID"
//	@Param			request	body		claimsdk.RejectRequest	true	"Reason"
//	@Success		200		{object}	claimsdk.Expense
//	@Failure		403		{object}	claimsdk.ErrorResponse	"Not an admin"
//	@Failure		404		{object}	claimsdk.ErrorResponse	"Unknown expense"
//	@Failure		409		{object}	claimsdk.ErrorResponse	"Expense already decided"
//	@Failure		422		{object}	claimsdk.ErrorResponse	"Missing reason"
//	@Router			/v1/expenses/{id}/reject [post]
func (h *ExpensesHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r.Context())
	if !ok {
		claimsdk.ErrInvalidToken.WriteError(w)
		return
	}

	// An empty body is treated as an empty reason.
	var req claimsdk.RejectRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	view, err := h.Expenses.Reject(r.Context(), caller, r.PathValue("id"), req.Reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toExpense(view))
}
