// Package claimsdk is a Go client for the expense claims HTTP API.
//
// Anonymous operations (register, login, health) live on Client. Register
// and Login return a Session that carries the bearer token for every other
// call:
//
//	c := claimsdk.NewClient("http://localhost:8080")
//	s, err := c.Login(ctx, "ada@example.com", "correct horse")
//	if err != nil {
//		return err
//	}
//	exp, err := s.CreateExpense(ctx, claimsdk.CreateExpenseRequest{
//		Amount:      decimal.RequireFromString("45.00"),
//		Category:    claimsdk.CategoryFood,
//		ExpenseDate: "2025-10-20",
//	})
//
// Server errors come back as *APIError or *ValidationError and can be matched
// with errors.Is against the predefined values, e.g. ErrForbidden.
//
// The request and response types are shared with the server handlers, so
// they are the wire contract.
package claimsdk
