package controller

import "context"

// DeletePrompt is the question put to the Confirmer before a delete.
const DeletePrompt = "Are you sure you want to delete this employee?"

// Confirmer answers yes/no questions on behalf of the user.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Approve and Decline give fixed answers.
var (
	Approve Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	Decline Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)
