package store

import "context"

type reqIDKey struct{}

// WithRequestID tags ctx with the request id; the SQL tracer picks it up so
// query logs line up with access logs
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

// RequestID reads the tag back, reporting whether a non-empty id was present
func RequestID(ctx context.Context) (string, bool) {
	v := ctx.Value(reqIDKey{})
	if v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}
