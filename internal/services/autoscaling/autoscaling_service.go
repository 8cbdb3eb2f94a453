package autoscaling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asgkit/asgkit/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
)

type AutoScalingService struct {
	client autoscaling.DescribeLaunchConfigurationsAPIClient
}

func NewAutoScalingService(client autoscaling.DescribeLaunchConfigurationsAPIClient) *AutoScalingService {
	return &AutoScalingService{client: client}
}

// ListLaunchConfigurations returns every launch configuration in the client's region, following pagination.
func (as *AutoScalingService) ListLaunchConfigurations(ctx context.Context) ([]types.LaunchConfigRecord, error) {
	slog.Info("🔍 listing launch configurations")

	var records []types.LaunchConfigRecord
	paginator := autoscaling.NewDescribeLaunchConfigurationsPaginator(as.client, &autoscaling.DescribeLaunchConfigurationsInput{
		MaxRecords: aws.Int32(100),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("❌ Failed to describe launch configurations: %v", err)
		}

		for _, lc := range page.LaunchConfigurations {
			records = append(records, types.LaunchConfigRecord{
				Name:         aws.ToString(lc.LaunchConfigurationName),
				ARN:          aws.ToString(lc.LaunchConfigurationARN),
				UserData:     aws.ToString(lc.UserData),
				InstanceType: aws.ToString(lc.InstanceType),
				ImageID:      aws.ToString(lc.ImageId),
			})
		}
	}

	slog.Debug("listed launch configurations", "count", len(records))
	return records, nil
}

// FindLaunchConfigurations lists launch configurations and narrows them with query.
func (as *AutoScalingService) FindLaunchConfigurations(ctx context.Context, query types.LaunchConfigQuery) ([]types.LaunchConfigRecord, error) {
	records, err := as.ListLaunchConfigurations(ctx)
	if err != nil {
		return nil, err
	}

	return Search(records, query)
}
