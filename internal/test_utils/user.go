package test_utils

import (
	"context"

	"github.com/eletroproposta/eletroproposta/pkg/user"
)

// TestUser is the user every test context is scoped to.
var TestUser = user.User{
	Id:      1,
	Uid:     "test-uid",
	Name:    "Test Electrician",
	Email:   "test@example.com",
	Company: "Test Eletro Ltda",
	Plan: user.Plan{
		Name:          "pro",
		PaymentStatus: "active",
	},
}

// ContextWithTestUser returns a context carrying TestUser, the way the
// middleware does for real requests.
func ContextWithTestUser() context.Context {
	return user.WithUser(context.Background(), TestUser)
}
