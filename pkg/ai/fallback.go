package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsRateLimited reports whether err signals provider throttling (HTTP 429,
// gRPC RESOURCE_EXHAUSTED or a quota message).
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return true
	}
	var oErr *openai.Error
	if errors.As(err, &oErr) && oErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	var aErr *anthropic.Error
	if errors.As(err, &aErr) && aErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}

	return isQuotaError(err)
}

// isQuotaError checks if the error text indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"resource_exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// FallbackGenerator sends prompts to primary and switches to secondary when
// primary is throttled or unreachable. Other primary errors are returned as is.
type FallbackGenerator struct {
	primary   TextGenerator
	secondary TextGenerator
	logger    *zap.Logger
}

// NewFallbackGenerator creates a new fallback generator with both providers
func NewFallbackGenerator(primary, secondary TextGenerator, logger *zap.Logger) *FallbackGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackGenerator{
		primary:   primary,
		secondary: secondary,
		logger:    logger.Named("ai-fallback"),
	}
}

func (f *FallbackGenerator) Name() string {
	return fmt.Sprintf("%s|%s", f.primary.Name(), f.secondary.Name())
}

func (f *FallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := f.primary.Generate(ctx, prompt)
	if err == nil {
		return text, nil
	}
	if !IsRateLimited(err) && !isConnectionError(err) {
		return "", err
	}

	f.logger.Warn("primary provider unavailable, falling back",
		zap.String("primary", f.primary.Name()),
		zap.String("secondary", f.secondary.Name()),
		zap.Error(err))

	text, serr := f.secondary.Generate(ctx, prompt)
	if serr != nil {
		f.logger.Warn("secondary provider failed", zap.Error(serr))
		// Keep the primary error so callers still see the throttling signal.
		return "", err
	}
	return text, nil
}
