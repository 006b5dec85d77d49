package ctx

import (
	"context"

	"github.com/krakosik/happenings/internal/dto"
)

type contextKey string

const (
	AdminContextKey contextKey = "admin"
)

type Admin = dto.Admin

func WithAdmin(parent context.Context, admin Admin) context.Context {
	return context.WithValue(parent, AdminContextKey, admin)
}

func GetAdminFromContext(ctx context.Context) (Admin, bool) {
	admin, ok := ctx.Value(AdminContextKey).(Admin)
	return admin, ok
}
