// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyAPIKeyID ctxKey = "api_key_id"

// WithRequest annotates context with the request id so chimw.GetReqID can retrieve it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithAPIKey annotates context with the authenticated api key identifier
func WithAPIKey(ctx context.Context, keyID string) context.Context {
	if keyID != "" {
		ctx = context.WithValue(ctx, keyAPIKeyID, keyID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// APIKeyID returns the api key identifier on the context if present
func APIKeyID(ctx context.Context) string {
	if v, ok := ctx.Value(keyAPIKeyID).(string); ok {
		return v
	}
	return ""
}
