package autoscaling

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/asgkit/asgkit/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	autoscalingtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockDescribeLaunchConfigurationsClient struct {
	DescribeLaunchConfigurationsFunc func(ctx context.Context, params *autoscaling.DescribeLaunchConfigurationsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeLaunchConfigurationsOutput, error)
}

func (m *MockDescribeLaunchConfigurationsClient) DescribeLaunchConfigurations(ctx context.Context, params *autoscaling.DescribeLaunchConfigurationsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeLaunchConfigurationsOutput, error) {
	return m.DescribeLaunchConfigurationsFunc(ctx, params, optFns...)
}

func launchConfiguration(name string) autoscalingtypes.LaunchConfiguration {
	return autoscalingtypes.LaunchConfiguration{
		LaunchConfigurationName: aws.String(name),
		LaunchConfigurationARN:  aws.String("arn:aws:autoscaling:eu-west-1:123456789012:launchConfiguration:abc:launchConfigurationName/" + name),
		UserData:                aws.String("ZXhwb3J0IENMT1VE"),
		InstanceType:            aws.String("t3.small"),
		ImageId:                 aws.String("ami-0d75df7e"),
	}
}

// pagedClient serves each page in turn, chaining them with NextToken.
func pagedClient(pages ...[]autoscalingtypes.LaunchConfiguration) (*MockDescribeLaunchConfigurationsClient, *int) {
	calls := 0
	return &MockDescribeLaunchConfigurationsClient{
		DescribeLaunchConfigurationsFunc: func(ctx context.Context, params *autoscaling.DescribeLaunchConfigurationsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeLaunchConfigurationsOutput, error) {
			page := calls
			calls++

			output := &autoscaling.DescribeLaunchConfigurationsOutput{LaunchConfigurations: pages[page]}
			if page+1 < len(pages) {
				output.NextToken = aws.String(strconv.Itoa(page + 1))
			}
			return output, nil
		},
	}, &calls
}

func TestAutoScalingService_ListLaunchConfigurations(t *testing.T) {
	tests := []struct {
		name      string
		pages     [][]autoscalingtypes.LaunchConfiguration
		wantNames []string
		wantCalls int
	}{
		{
			name:      "single_page",
			pages:     [][]autoscalingtypes.LaunchConfiguration{{launchConfiguration("app-1"), launchConfiguration("web-1")}},
			wantNames: []string{"app-1", "web-1"},
			wantCalls: 1,
		},
		{
			name: "multiple_pages",
			pages: [][]autoscalingtypes.LaunchConfiguration{
				{launchConfiguration("app-1")},
				{launchConfiguration("app-2")},
				{launchConfiguration("web-1")},
			},
			wantNames: []string{"app-1", "app-2", "web-1"},
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := pagedClient(tt.pages...)
			service := NewAutoScalingService(client)

			got, err := service.ListLaunchConfigurations(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantNames, names(got))
			assert.Equal(t, tt.wantCalls, *calls)
			assert.Equal(t, types.LaunchConfigRecord{
				Name:         "app-1",
				ARN:          "arn:aws:autoscaling:eu-west-1:123456789012:launchConfiguration:abc:launchConfigurationName/app-1",
				UserData:     "ZXhwb3J0IENMT1VE",
				InstanceType: "t3.small",
				ImageID:      "ami-0d75df7e",
			}, got[0])
		})
	}
}

func TestAutoScalingService_ListLaunchConfigurations_Error(t *testing.T) {
	client := &MockDescribeLaunchConfigurationsClient{
		DescribeLaunchConfigurationsFunc: func(ctx context.Context, params *autoscaling.DescribeLaunchConfigurationsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeLaunchConfigurationsOutput, error) {
			return nil, errors.New("AccessDenied")
		},
	}

	_, err := NewAutoScalingService(client).ListLaunchConfigurations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestAutoScalingService_FindLaunchConfigurations(t *testing.T) {
	client, _ := pagedClient(
		[]autoscalingtypes.LaunchConfiguration{launchConfiguration("web-1"), launchConfiguration("app-2")},
		[]autoscalingtypes.LaunchConfiguration{launchConfiguration("app-1")},
	)

	got, err := NewAutoScalingService(client).FindLaunchConfigurations(context.Background(), types.LaunchConfigQuery{
		NameRegex: "app",
		Sort:      true,
		SortOrder: types.SortOrderDescending,
		SortEnd:   "1",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"app-2"}, names(got))
}
