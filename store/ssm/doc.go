// Package ssm provides a resolver.Store backed by AWS Systems Manager Parameter Store.
//
// Credentials come from the default AWS chain (environment, shared config,
// instance roles). Use Factory to let the resolver build the client lazily on
// its first Load, or New to wrap a client you already have:
//
//	res, err := resolver.New(resolver.Config{
//	    ClientFactory: ssm.Factory("eu-west-1", ssm.WithRateLimit(20, 5)),
//	    RootPath:      "/project/",
//	    Variables:     vars,
//	})
//
// Error Handling:
//   - ParameterNotFound maps to resolver.ErrParameterNotFound
//   - AccessDeniedException maps to resolver.ErrAccessDenied
//   - UnrecognizedClientException and InvalidClientTokenId map to resolver.ErrUnrecognizedClient
//   - the AWS error code is kept as the StoreError class and the original error stays in the chain
package ssm
