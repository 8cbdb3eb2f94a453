package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asgkit/asgkit/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

type MetricService struct {
	client cloudwatch.ListMetricsAPIClient
}

func NewMetricService(client cloudwatch.ListMetricsAPIClient) *MetricService {
	return &MetricService{client: client}
}

// MetricCheck reports whether the metric an alarm watches has ever been published in the region.
type MetricCheck struct {
	Alarm      string
	Namespace  string
	MetricName string
	Found      bool
}

// CheckAlarmMetrics looks up every alarm's namespace and metric name. A missing metric is logged,
// not returned as an error.
func (ms *MetricService) CheckAlarmMetrics(ctx context.Context, alarms []types.AlarmSpec) ([]MetricCheck, error) {
	found := map[string]bool{}
	checks := make([]MetricCheck, 0, len(alarms))

	for _, alarm := range alarms {
		key := alarm.Namespace + "/" + alarm.MetricName

		exists, cached := found[key]
		if !cached {
			var err error
			exists, err = ms.metricExists(ctx, alarm.Namespace, alarm.MetricName)
			if err != nil {
				return nil, err
			}
			found[key] = exists
		}

		if !exists {
			slog.Warn("⚠️ alarm metric has no data in this region yet", "alarm", alarm.Name, "namespace", alarm.Namespace, "metric", alarm.MetricName)
		}

		checks = append(checks, MetricCheck{
			Alarm:      alarm.Name,
			Namespace:  alarm.Namespace,
			MetricName: alarm.MetricName,
			Found:      exists,
		})
	}

	return checks, nil
}

func (ms *MetricService) metricExists(ctx context.Context, namespace, metricName string) (bool, error) {
	paginator := cloudwatch.NewListMetricsPaginator(ms.client, &cloudwatch.ListMetricsInput{
		Namespace:  aws.String(namespace),
		MetricName: aws.String(metricName),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return false, fmt.Errorf("❌ Failed to list metrics for %s/%s: %v", namespace, metricName, err)
		}
		if len(page.Metrics) > 0 {
			return true, nil
		}
	}

	return false, nil
}
