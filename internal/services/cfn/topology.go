package cfn

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/asgkit/asgkit/internal/types"
)

const (
	LoadBalancerNodeName = "LoadBalancer"
	RecordSetNodeName    = "LoadBalancerRecordSet"

	HealthCheckTypeELB = "ELB"
	HealthCheckTypeEC2 = "EC2"
)

// topology is the load-balancing shape of a stack. It is chosen once per run so that the
// load-balancer branch is decided in a single place.
type topology interface {
	parameters(p types.StackParameters) []Parameter
	addNodes(r *assembly)
	healthCheckType() string
	loadBalancerNames() Optional
	outputs() OutputTable
}

func selectTopology(enableLoadBalancer bool) topology {
	return Decide[topology](enableLoadBalancer, &withLoadBalancer{}, withoutLoadBalancer{})
}

type withoutLoadBalancer struct{}

func (withoutLoadBalancer) parameters(types.StackParameters) []Parameter { return nil }
func (withoutLoadBalancer) addNodes(*assembly)                          {}
func (withoutLoadBalancer) healthCheckType() string                     { return HealthCheckTypeEC2 }
func (withoutLoadBalancer) loadBalancerNames() Optional                 { return Absent }
func (withoutLoadBalancer) outputs() OutputTable                        { return nil }

type withLoadBalancer struct {
	loadBalancer *Node
	recordSet    *Node
}

func (t *withLoadBalancer) parameters(p types.StackParameters) []Parameter {
	params := []Parameter{
		{Name: ParamHostedZoneName, Type: ParameterTypeString, Description: "The DNS name of an existing Amazon Route 53 hosted zone", Default: defaultOf(p.HostedZoneName)},
		{Name: ParamDNSRecord, Type: ParameterTypeString, Description: "Record created in the hosted zone for the load balancer", Default: defaultOf(p.DNSRecord)},
	}

	if len(p.LoadBalancerSecurityGroups) > 0 {
		params = append(params, Parameter{
			Name:        ParamLoadBalancerSecurityGroup,
			Type:        ParameterTypeCommaDelimitedList,
			Description: "Security group for api app load balancer.",
			Default:     defaultOf(strings.Join(p.LoadBalancerSecurityGroups, ",")),
		})
	}

	return append(params,
		Parameter{Name: ParamLoadBalancerName, Type: ParameterTypeString, Description: "Name of the load balancer", Default: defaultOf(p.LoadBalancerName)},
		Parameter{Name: ParamLoadBalancerSchema, Type: ParameterTypeString, Description: "Load balancer scheme, internal or internet-facing", Default: defaultOf(p.LoadBalancerSchema)},
		Parameter{Name: ParamHealthCheckInterval, Type: ParameterTypeString, Description: "Seconds between load balancer health checks", Default: defaultOf(p.HealthCheckInterval)},
		Parameter{Name: ParamHealthCheckTimeout, Type: ParameterTypeString, Description: "Seconds before a health check times out", Default: defaultOf(p.HealthCheckTimeout)},
		Parameter{Name: ParamHealthyThreshold, Type: ParameterTypeString, Description: "Consecutive successes before an instance is healthy", Default: defaultOf(p.HealthyThreshold)},
		Parameter{Name: ParamUnhealthyThreshold, Type: ParameterTypeString, Description: "Consecutive failures before an instance is unhealthy", Default: defaultOf(p.UnhealthyThreshold)},
	)
}

func (t *withLoadBalancer) addNodes(r *assembly) {
	p := r.params
	r.requireLoadBalancerFields()

	listeners := List{}
	for i, spec := range r.listenerSpecs() {
		entry, err := listenerEntry(i, spec)
		if err != nil {
			r.fail(err)
			continue
		}
		listeners = append(listeners, entry)
	}

	properties := Object{}.
		With("ConnectionDrainingPolicy", Object{}.With("Enabled", Bool(true)).With("Timeout", Int(30))).
		With("Subnets", Ref{Target: ParamSubnets}).
		With("HealthCheck", Object{}.
			With("Target", String(healthCheckTarget(p.HealthCheckProtocol, p.HealthCheckPort, p.HealthCheckPath))).
			With("HealthyThreshold", Ref{Target: ParamHealthyThreshold}).
			With("UnhealthyThreshold", Ref{Target: ParamUnhealthyThreshold}).
			With("Interval", Ref{Target: ParamHealthCheckInterval}).
			With("Timeout", Ref{Target: ParamHealthCheckTimeout})).
		With("Listeners", listeners).
		With("CrossZone", Bool(true)).
		WithOptional("SecurityGroups", IncludeIf(len(p.LoadBalancerSecurityGroups) > 0, Ref{Target: ParamLoadBalancerSecurityGroup})).
		With("LoadBalancerName", Ref{Target: ParamLoadBalancerName}).
		With("Scheme", Ref{Target: ParamLoadBalancerSchema}).
		WithOptional("AccessLoggingPolicy", accessLoggingPolicy(p))

	t.loadBalancer = &Node{Name: LoadBalancerNodeName, Kind: KindLoadBalancer, Properties: properties}
	r.add(t.loadBalancer)

	t.recordSet = &Node{
		Name: RecordSetNodeName,
		Kind: KindRecordSet,
		Properties: Object{}.
			With("HostedZoneName", Join{Parts: []Value{Ref{Target: ParamHostedZoneName}, String(".")}}).
			With("Name", Join{Parts: []Value{Ref{Target: ParamDNSRecord}, String("."), Ref{Target: ParamHostedZoneName}, String(".")}}).
			With("Type", String("CNAME")).
			With("TTL", String("300")).
			With("ResourceRecords", List{t.loadBalancer.GetAtt("DNSName")}),
	}
	r.add(t.recordSet)
}

func (t *withLoadBalancer) healthCheckType() string {
	return HealthCheckTypeELB
}

func (t *withLoadBalancer) loadBalancerNames() Optional {
	return Present(List{t.loadBalancer.Ref()})
}

func (t *withLoadBalancer) outputs() OutputTable {
	return OutputTable{
		{Name: "DomainName", Description: "DNS to access the service", Value: t.recordSet.Ref()},
		{Name: "LoadBalancer", Description: "ELB dns", Value: t.loadBalancer.GetAtt("DNSName")},
	}
}

func (r *assembly) requireLoadBalancerFields() {
	required := []struct {
		field string
		value string
	}{
		{"hosted_zone_name", r.params.HostedZoneName},
		{"dns_record", r.params.DNSRecord},
		{"load_balancer_name", r.params.LoadBalancerName},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			r.fail(&MissingFieldError{Owner: "stack " + strconv.Quote(r.descriptor.ProjectName), Field: f.field, Reason: "enable_load_balancer is true"})
		}
	}
}

// listenerSpecs falls back to a single HTTP 80 listener when none are configured.
func (r *assembly) listenerSpecs() []types.ListenerSpec {
	if len(r.descriptor.Listeners) > 0 {
		return r.descriptor.Listeners
	}

	slog.Debug("no listeners configured, using HTTP 80")
	return []types.ListenerSpec{{LoadBalancerPort: 80, InstancePort: 80, Protocol: string(types.ListenerProtocolHTTP)}}
}

func listenerEntry(index int, spec types.ListenerSpec) (Object, error) {
	protocol := types.ListenerProtocol(spec.Protocol).Normalized()
	secure := protocol.IsSecure()

	certificate := ""
	if spec.SSLCertificateID != nil {
		certificate = strings.TrimSpace(*spec.SSLCertificateID)
	}

	if secure && certificate == "" {
		return nil, &MissingFieldError{
			Owner:  fmt.Sprintf("listener %d (%s %d)", index, protocol, spec.LoadBalancerPort),
			Field:  "ssl_certificate_id",
			Reason: "its protocol is HTTPS",
		}
	}
	if !secure && certificate != "" {
		slog.Warn("⚠️ ignoring ssl_certificate_id on a non-HTTPS listener", "listener", index, "protocol", protocol)
	}

	return Object{}.
		With("LoadBalancerPort", String(strconv.FormatInt(spec.LoadBalancerPort, 10))).
		With("InstancePort", String(strconv.FormatInt(spec.InstancePort, 10))).
		With("Protocol", String(protocol)).
		With("InstanceProtocol", String(instanceProtocol(protocol, spec.InstanceProtocol))).
		WithOptional("SSLCertificateId", IncludeIf(secure, String(certificate))), nil
}

func instanceProtocol(protocol types.ListenerProtocol, configured string) types.ListenerProtocol {
	if configured != "" {
		return types.ListenerProtocol(configured).Normalized()
	}

	switch protocol {
	case types.ListenerProtocolHTTPS:
		return types.ListenerProtocolHTTP
	case types.ListenerProtocolSSL:
		return types.ListenerProtocolTCP
	default:
		return protocol
	}
}

// healthCheckTarget builds PROTOCOL:PORT[/path]. Raw transport checks (TCP, SSL) take no path.
func healthCheckTarget(protocol, port, path string) string {
	normalized := types.ListenerProtocol(protocol).Normalized()

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	segment := Decide(normalized.IsRawTransport(), "", path)

	return string(normalized) + ":" + port + segment
}

func accessLoggingPolicy(p types.StackParameters) Optional {
	if p.AccessLogBucket == "" {
		return Absent
	}

	policy := Object{}.
		With("Enabled", Bool(true)).
		With("S3BucketName", String(p.AccessLogBucket)).
		WithOptional("S3BucketPrefix", defaultOf(p.AccessLogPrefix)).
		With("EmitInterval", Int(*p.AccessLogEmitInterval))

	return Present(policy)
}
