package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"golang.org/x/time/rate"
)

const (
	DefaultAutoScalingRequestsPerSecond = 5
	DefaultAutoScalingBurstSize         = 2
)

type RateLimitedAutoScalingClient struct {
	*autoscaling.Client
	limiter *rate.Limiter
}

func NewAutoScalingClient(region string, requestsPerSecond float64, burstSize int) (*RateLimitedAutoScalingClient, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		// https://docs.aws.amazon.com/sdk-for-go/v2/developer-guide/configure-retries-timeouts.html
		config.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(opts *retry.StandardOptions) {
				opts.MaxAttempts = 3
				opts.MaxBackoff = 20 * time.Second
			})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to load AWS config: %v", err)
	}

	if region != "" {
		cfg.Region = region
	}

	return &RateLimitedAutoScalingClient{
		Client:  autoscaling.NewFromConfig(cfg),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

func (c *RateLimitedAutoScalingClient) Wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

// DescribeLaunchConfigurations shares the account-wide Auto Scaling API quota with every other
// caller, so throttling past the SDK's own retries is retried again behind the limiter.
func (c *RateLimitedAutoScalingClient) DescribeLaunchConfigurations(ctx context.Context, params *autoscaling.DescribeLaunchConfigurationsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeLaunchConfigurationsOutput, error) {
	const maxExtraRetries = 5
	var lastErr error

	for i := 0; i <= maxExtraRetries; i++ {
		if err := c.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter cancelled: %w", err)
		}

		output, err := c.Client.DescribeLaunchConfigurations(ctx, params, optFns...)
		if err == nil {
			return output, nil
		}

		lastErr = err
		if !isThrottlingError(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

func isThrottlingError(err error) bool {
	errMsg := err.Error()
	return strings.Contains(errMsg, "Throttling") ||
		strings.Contains(errMsg, "Rate exceeded") ||
		strings.Contains(errMsg, "retry quota exceeded")
}
