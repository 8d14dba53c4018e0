package audit

import "context"

// Origin identifies who triggered a change and from where. Empty fields mean
// the information is not available, e.g. for background jobs.
type Origin struct {
	ActorID   string
	IPAddress string
}

type originKey struct{}

// WithOrigin returns a copy of ctx carrying o.
func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

// OriginFrom returns the origin stored in ctx, or the zero Origin.
func OriginFrom(ctx context.Context) Origin {
	o, _ := ctx.Value(originKey{}).(Origin)
	return o
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
