package claimsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated view of the API. Tokens are not refreshed;
// log in again once ExpiresAt passes.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
	identity  Identity
}

func newSession(c *Client, auth AuthResponse) *Session {
	return &Session{
		client:    c,
		token:     auth.AccessToken,
		expiresAt: auth.ExpiresAt,
		identity:  auth.Identity,
	}
}

func (s *Session) AccessToken() string  { return s.token }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Identity is the profile returned at login, if the session came from one.
func (s *Session) Identity() Identity { return s.identity }

func (s *Session) get(ctx context.Context, path string, target any) error {
	resp, err := s.client.doJSON(ctx, http.MethodGet, path, s.token, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

func (s *Session) send(ctx context.Context, method, path string, body, target any, expected int) error {
	resp, err := s.client.doJSON(ctx, method, path, s.token, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expected)
}

// Me returns the caller's own profile.
func (s *Session) Me(ctx context.Context) (*Identity, error) {
	var out Identity
	if err := s.get(ctx, "/v1/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListIdentities is admin only.
func (s *Session) ListIdentities(ctx context.Context) ([]Identity, error) {
	var out IdentityList
	if err := s.get(ctx, "/v1/identities", &out); err != nil {
		return nil, err
	}
	return out.Identities, nil
}

func (s *Session) DeactivateIdentity(ctx context.Context, id string) (*Identity, error) {
	var out Identity
	path := "/v1/identities/" + url.PathEscape(id) + "/deactivate"
	if err := s.send(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ActivateIdentity(ctx context.Context, id string) (*Identity, error) {
	var out Identity
	path := "/v1/identities/" + url.PathEscape(id) + "/activate"
	if err := s.send(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	var out Expense
	if err := s.send(ctx, http.MethodPost, "/v1/expenses", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListExpenses returns the caller's visible expenses, newest first.
func (s *Session) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]Expense, error) {
	path := "/v1/expenses"
	if q := filter.Values().Encode(); q != "" {
		path += "?" + q
	}

	var out ExpenseList
	if err := s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Expenses, nil
}

// ListPending returns the approval queue, oldest first. Admin only.
func (s *Session) ListPending(ctx context.Context) ([]Expense, error) {
	var out ExpenseList
	if err := s.get(ctx, "/v1/expenses/pending", &out); err != nil {
		return nil, err
	}
	return out.Expenses, nil
}

func (s *Session) GetExpense(ctx context.Context, id string) (*Expense, error) {
	var out Expense
	if err := s.get(ctx, "/v1/expenses/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) TransitionExpense(ctx context.Context, id string, req TransitionRequest) (*Expense, error) {
	var out Expense
	path := "/v1/expenses/" + url.PathEscape(id) + "/status"
	if err := s.send(ctx, http.MethodPatch, path, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ApproveExpense(ctx context.Context, id string) (*Expense, error) {
	var out Expense
	path := "/v1/expenses/" + url.PathEscape(id) + "/approve"
	if err := s.send(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RejectExpense(ctx context.Context, id, reason string) (*Expense, error) {
	var out Expense
	path := "/v1/expenses/" + url.PathEscape(id) + "/reject"
	if err := s.send(ctx, http.MethodPost, path, RejectRequest{Reason: reason}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) Analytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := s.get(ctx, "/v1/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
