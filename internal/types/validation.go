package types

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	cloudwatchtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report yaml field names so messages match what users wrote in their descriptor.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	validate.RegisterValidation("elb_protocol", func(fl validator.FieldLevel) bool {
		return ListenerProtocol(fl.Field().String()).IsValid()
	})
	validate.RegisterValidation("policy_type", func(fl validator.FieldLevel) bool {
		return PolicyType(fl.Field().String()).IsValid()
	})
	validate.RegisterValidation("adjustment_type", func(fl validator.FieldLevel) bool {
		return AdjustmentType(fl.Field().String()).IsValid()
	})
	validate.RegisterValidation("cw_comparison_operator", func(fl validator.FieldLevel) bool {
		return slices.Contains(cloudwatchtypes.ComparisonOperator("").Values(), cloudwatchtypes.ComparisonOperator(fl.Field().String()))
	})
	validate.RegisterValidation("cw_statistic", func(fl validator.FieldLevel) bool {
		return slices.Contains(cloudwatchtypes.Statistic("").Values(), cloudwatchtypes.Statistic(fl.Field().String()))
	})
	validate.RegisterValidation("cw_unit", func(fl validator.FieldLevel) bool {
		return slices.Contains(cloudwatchtypes.StandardUnit("").Values(), cloudwatchtypes.StandardUnit(fl.Field().String()))
	})
}

// Validate checks the shape of the descriptor: required fields, enum values and ranges.
func (d StackDescriptor) Validate() (bool, []error) {
	errs := []error{}

	if err := validate.Struct(d); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return false, []error{fmt.Errorf("failed to validate descriptor: %w", err)}
		}
		for _, fieldErr := range validationErrs {
			errs = append(errs, describeFieldError(fieldErr))
		}
	}

	return len(errs) == 0, errs
}

func describeFieldError(fieldErr validator.FieldError) error {
	field := strings.TrimPrefix(fieldErr.Namespace(), "StackDescriptor.")

	switch fieldErr.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "min", "max":
		return fmt.Errorf("%s must satisfy %s=%s, got %v", field, fieldErr.Tag(), fieldErr.Param(), fieldErr.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %v", field, fieldErr.Param(), fieldErr.Value())
	case "elb_protocol":
		return fmt.Errorf("%s must be one of %v, got %v", field, ListenerProtocol("").Values(), fieldErr.Value())
	case "cw_comparison_operator":
		return fmt.Errorf("%s must be one of %v, got %v", field, cloudwatchtypes.ComparisonOperator("").Values(), fieldErr.Value())
	case "cw_statistic":
		return fmt.Errorf("%s must be one of %v, got %v", field, cloudwatchtypes.Statistic("").Values(), fieldErr.Value())
	case "cw_unit":
		return fmt.Errorf("%s is not a CloudWatch unit: %v", field, fieldErr.Value())
	default:
		return fmt.Errorf("%s failed '%s' validation, got %v", field, fieldErr.Tag(), fieldErr.Value())
	}
}
