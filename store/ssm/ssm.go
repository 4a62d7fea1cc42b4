package ssm

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-params/resolver"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"golang.org/x/time/rate"
)

// DefaultMaxResults is the largest page Parameter Store returns for a path listing.
const DefaultMaxResults int32 = 10

// AWS error codes mapped onto resolver sentinels.
const (
	CodeParameterNotFound   = "ParameterNotFound"
	CodeAccessDenied        = "AccessDeniedException"
	CodeUnrecognizedClient  = "UnrecognizedClientException"
	CodeInvalidClientTokens = "InvalidClientTokenId"
)

// API is the part of *ssm.Client the store calls.
type API interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput,
		optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// Option configures a Store.
type Option func(*Store)

// WithMaxResults sets the page size requested from GetParametersByPath.
func WithMaxResults(n int32) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithRateLimit paces requests to at most rps per second with the given burst.
// Parameter Store throttles aggressive callers.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Store) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}
	}
}

// Store is a resolver.Store backed by AWS Systems Manager Parameter Store.
type Store struct {
	api        API
	maxResults int32
	limiter    *rate.Limiter
}

// New wraps an SSM API client.
func New(api API, opts ...Option) *Store {
	store := &Store{
		api:        api,
		maxResults: DefaultMaxResults,
		limiter:    nil,
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// NewDefault builds a client from the default AWS credential chain.
// An empty region defers to the environment and shared config.
func NewDefault(ctx context.Context, region string, opts ...Option) (*Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return New(ssm.NewFromConfig(cfg), opts...), nil
}

// Factory returns a resolver.StoreFactory that builds the default client on first use.
func Factory(region string, opts ...Option) resolver.StoreFactory {
	return func(ctx context.Context) (resolver.Store, error) {
		return NewDefault(ctx, region, opts...)
	}
}

// GetParameter fetches a single parameter.
func (s *Store) GetParameter(ctx context.Context, path string, decrypt bool) (resolver.Parameter, error) {
	err := s.wait(ctx)
	if err != nil {
		return resolver.Parameter{}, err
	}

	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		return resolver.Parameter{}, translate(err)
	}

	if out.Parameter == nil {
		return resolver.Parameter{}, resolver.NewStoreError(resolver.ErrParameterNotFound,
			CodeParameterNotFound, fmt.Sprintf("empty response for %s", path))
	}

	return convert(*out.Parameter), nil
}

// GetParametersByPath fetches one page of the parameters under query.Path.
func (s *Store) GetParametersByPath(ctx context.Context, query resolver.PathQuery) (resolver.Page, error) {
	err := s.wait(ctx)
	if err != nil {
		return resolver.Page{}, err
	}

	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(query.Path),
		Recursive:      aws.Bool(query.Recursive),
		WithDecryption: aws.Bool(query.WithDecryption),
		MaxResults:     aws.Int32(s.maxResults),
		NextToken:      nil,
	}

	if query.NextToken != "" {
		input.NextToken = aws.String(query.NextToken)
	}

	out, err := s.api.GetParametersByPath(ctx, input)
	if err != nil {
		return resolver.Page{}, translate(err)
	}

	page := resolver.Page{
		Parameters: make([]resolver.Parameter, 0, len(out.Parameters)),
		NextToken:  aws.ToString(out.NextToken),
	}

	for _, param := range out.Parameters {
		page.Parameters = append(page.Parameters, convert(param))
	}

	return page, nil
}

func (s *Store) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}

	err := s.limiter.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	return nil
}

func convert(param types.Parameter) resolver.Parameter {
	value := resolver.Absent()
	if param.Value != nil {
		value = resolver.String(*param.Value)
	}

	return resolver.Parameter{
		Path:    aws.ToString(param.Name),
		Value:   value,
		Type:    string(param.Type),
		Version: param.Version,
	}
}

// translate maps AWS API errors onto resolver sentinels, keeping the AWS code as class.
// API errors with other codes keep their code and message without a sentinel.
func translate(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("ssm request: %w", err)
	}

	wrapped := err

	switch apiErr.ErrorCode() {
	case CodeParameterNotFound:
		wrapped = errors.Join(resolver.ErrParameterNotFound, err)
	case CodeAccessDenied:
		wrapped = errors.Join(resolver.ErrAccessDenied, err)
	case CodeUnrecognizedClient, CodeInvalidClientTokens:
		wrapped = errors.Join(resolver.ErrUnrecognizedClient, err)
	}

	return &resolver.StoreError{
		Class:   apiErr.ErrorCode(),
		Message: apiErr.ErrorMessage(),
		Err:     wrapped,
	}
}
