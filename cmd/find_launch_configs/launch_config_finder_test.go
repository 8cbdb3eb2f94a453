package find_launch_configs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/asgkit/asgkit/internal/types"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockLaunchConfigSearcher struct {
	FindLaunchConfigurationsFunc func(ctx context.Context, query types.LaunchConfigQuery) ([]types.LaunchConfigRecord, error)
}

func (m *MockLaunchConfigSearcher) FindLaunchConfigurations(ctx context.Context, query types.LaunchConfigQuery) ([]types.LaunchConfigRecord, error) {
	return m.FindLaunchConfigurationsFunc(ctx, query)
}

var testRecords = []types.LaunchConfigRecord{
	{Name: "app-1", ARN: "arn:aws:autoscaling:eu-west-1:123456789012:launchConfiguration:a:launchConfigurationName/app-1", InstanceType: "t3.small", ImageID: "ami-1"},
	{Name: "app-2", ARN: "arn:aws:autoscaling:eu-west-1:123456789012:launchConfiguration:b:launchConfigurationName/app-2", InstanceType: "t3.large", ImageID: "ami-2"},
}

func newTestFinder(output types.OutputFormat, records []types.LaunchConfigRecord, err error, out *bytes.Buffer) (*LaunchConfigFinder, *types.LaunchConfigQuery) {
	var received types.LaunchConfigQuery
	searcher := &MockLaunchConfigSearcher{
		FindLaunchConfigurationsFunc: func(ctx context.Context, query types.LaunchConfigQuery) ([]types.LaunchConfigRecord, error) {
			received = query
			return records, err
		},
	}

	finder := NewLaunchConfigFinder(LaunchConfigFinderOpts{
		Region: "eu-west-1",
		Query:  types.LaunchConfigQuery{NameRegex: "app", Sort: true, SortOrder: types.SortOrderDescending, SortEnd: "1"},
		Output: output,
	}, searcher, out)

	return finder, &received
}

func TestLaunchConfigFinder_Run_JSON(t *testing.T) {
	var out bytes.Buffer
	finder, received := newTestFinder(types.OutputFormatJSON, testRecords, nil, &out)

	require.NoError(t, finder.Run(context.Background()))

	assert.Equal(t, "app", received.NameRegex)
	assert.Equal(t, types.SortOrderDescending, received.SortOrder)
	assert.Equal(t, "1", received.SortEnd)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "app-1", got[0]["name"])
	assert.Equal(t, "t3.small", got[0]["instance_type"])
	assert.Equal(t, "ami-2", got[1]["image_id"])
	assert.Contains(t, got[1], "user_data")
}

func TestLaunchConfigFinder_Run_YAML(t *testing.T) {
	var out bytes.Buffer
	finder, _ := newTestFinder(types.OutputFormatYAML, testRecords, nil, &out)

	require.NoError(t, finder.Run(context.Background()))

	var got []types.LaunchConfigRecord
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, testRecords, got)
}

func TestLaunchConfigFinder_Run_Markdown(t *testing.T) {
	tests := []struct {
		name    string
		records []types.LaunchConfigRecord
		want    []string
	}{
		{
			name:    "with_matches",
			records: testRecords,
			want:    []string{"eu-west-1", "app-1", "app-2", "t3.large"},
		},
		{
			name:    "no_matches",
			records: nil,
			want:    []string{"No launch configurations matched"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			finder, _ := newTestFinder(types.OutputFormatMarkdown, tt.records, nil, &out)

			require.NoError(t, finder.Run(context.Background()))
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestLaunchConfigFinder_Run_EmptyJSON(t *testing.T) {
	var out bytes.Buffer
	finder, _ := newTestFinder(types.OutputFormatJSON, nil, nil, &out)

	require.NoError(t, finder.Run(context.Background()))
	assert.Equal(t, "[]\n", out.String())
}

func TestLaunchConfigFinder_Run_SearchError(t *testing.T) {
	var out bytes.Buffer
	finder, _ := newTestFinder(types.OutputFormatJSON, nil, errors.New("invalid slice bound"), &out)

	err := finder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid slice bound")
	assert.Empty(t, out.String())
}
