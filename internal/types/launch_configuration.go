package types

// LaunchConfigRecord is the subset of an Auto Scaling launch configuration returned by the finder.
type LaunchConfigRecord struct {
	Name         string `json:"name" yaml:"name"`
	ARN          string `json:"arn" yaml:"arn"`
	UserData     string `json:"user_data" yaml:"user_data"`
	InstanceType string `json:"instance_type" yaml:"instance_type"`
	ImageID      string `json:"image_id" yaml:"image_id"`
}

// LaunchConfigQuery selects launch configurations: filter by name, then sort, then slice.
type LaunchConfigQuery struct {
	// NameRegex is matched from the start of the name. Empty matches everything.
	NameRegex string
	Sort      bool
	SortOrder SortOrder
	// SortStart and SortEnd are a half-open range with Python slice semantics.
	// Empty means unbounded; anything else must parse as an integer.
	SortStart string
	SortEnd   string
}
