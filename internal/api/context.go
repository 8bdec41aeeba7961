package api

import "context"

// User is the authenticated caller. ID is the Supabase auth user id.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

type ctxKey string

const ctxKeyUser ctxKey = "user"

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func UserFromContext(ctx context.Context) *User {
	v := ctx.Value(ctxKeyUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*User)
	return u
}
