package llm

import "context"

// DefaultPurpose labels requests whose context carries no purpose.
const DefaultPurpose = "extract"

type purposeKey struct{}

// WithPurpose tags ctx so the request log can group calls by caller.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or DefaultPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, _ := ctx.Value(purposeKey{}).(string); v != "" {
		return v
	}
	return DefaultPurpose
}
