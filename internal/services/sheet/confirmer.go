package sheet

//go:generate mockgen -destination=mock/mock.go -package=mocksheet -source=confirmer.go

import "context"

// Confirmer asks the player a yes/no question before a rest is taken
type Confirmer interface {
	Confirm(ctx context.Context, title, body string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(ctx context.Context, title, body string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, title, body string) (bool, error) {
	return f(ctx, title, body)
}

// AlwaysConfirm accepts every prompt
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string, string) (bool, error) {
	return true, nil
})
