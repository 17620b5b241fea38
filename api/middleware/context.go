package middleware

import (
	"context"
	"strconv"
)

type contextKey string

const (
	ctxUserEmail    contextKey = "user_email"
	ctxRole         contextKey = "actor_role"
	ctxUniversity   contextKey = "university"
	ctxRestaurantID contextKey = "restaurant_id"
)

func UserEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserEmail).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func UniversityFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUniversity).(string); ok {
		return v
	}
	return ""
}

// RestaurantIDFromContext returns the owner's restaurant scope, or 0 for
// student tokens.
func RestaurantIDFromContext(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxRestaurantID).(int); ok {
		return v
	}
	return 0
}

// WithUserEmail injects the caller identity into the context.
func WithUserEmail(ctx context.Context, email string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserEmail, email)
}

// WithUniversity injects the caller's campus into the context.
func WithUniversity(ctx context.Context, university string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUniversity, university)
}

// WithRestaurantID injects the owner restaurant scope for downstream handlers.
func WithRestaurantID(ctx context.Context, restaurantID int) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRestaurantID, restaurantID)
}

func restaurantIDString(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}
