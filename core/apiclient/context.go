package apiclient

import "context"

type tokenCtxKey struct{}

// ContextWithToken attaches a per-request bearer token to the context. It
// takes precedence over the client's token accessor and is used by the BFF
// proxy, which forwards a different user's token on every request. Ignored
// entirely in the web environment.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenCtxKey{}).(string)
	return token, ok && token != ""
}
