// Package aws implements the AWS side of deployments: function create or
// update, invocation, and account discovery via the AWS SDK.
package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// API is the provider surface consumed by commands; Client implements it.
// Commands depend on this interface so tests can substitute a fake.
type API interface {
	Region() string
	AccountID(ctx context.Context) (string, error)
	DeployFunction(ctx context.Context, fn FunctionConfig, archive []byte) error
	FunctionInfo(ctx context.Context, name string) (*FunctionInfo, error)
	Invoke(ctx context.Context, name string, payload []byte) ([]byte, error)
}

// Client wraps the AWS service clients used by deployments.
type Client struct {
	lambda *lambda.Client
	sts    *sts.Client
	region string
}

var _ API = (*Client)(nil)

// New resolves the default credential chain for the given region.
func New(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Client{
		lambda: lambda.NewFromConfig(cfg),
		sts:    sts.NewFromConfig(cfg),
		region: region,
	}, nil
}

// Region returns the region the client operates in.
func (c *Client) Region() string {
	return c.region
}

// AccountID resolves the AWS account of the active credentials.
func (c *Client) AccountID(ctx context.Context) (string, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to resolve caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}

// FunctionConfig describes one function to deploy.
type FunctionConfig struct {
	Name       string
	Handler    string
	Runtime    string
	Role       string
	MemorySize int
	Timeout    int
}

// DeployFunction creates the function if it does not exist yet, or updates
// its code and configuration otherwise.
func (c *Client) DeployFunction(ctx context.Context, fn FunctionConfig, archive []byte) error {
	_, err := c.lambda.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(fn.Name),
	})
	if err != nil {
		if isErrorCode(err, "ResourceNotFoundException") {
			return c.createFunction(ctx, fn, archive)
		}
		return fmt.Errorf("failed to look up function %s: %w", fn.Name, err)
	}
	return c.updateFunction(ctx, fn, archive)
}

func (c *Client) createFunction(ctx context.Context, fn FunctionConfig, archive []byte) error {
	// A freshly created role may not be assumable by Lambda yet; retry the
	// eventual-consistency error for a short while.
	err := retryOnCode(ctx, "InvalidParameterValueException", func() error {
		_, err := c.lambda.CreateFunction(ctx, &lambda.CreateFunctionInput{
			FunctionName: aws.String(fn.Name),
			Handler:      aws.String(fn.Handler),
			Role:         aws.String(fn.Role),
			Runtime:      lambdatypes.Runtime(fn.Runtime),
			MemorySize:   aws.Int32(int32(fn.MemorySize)),
			Timeout:      aws.Int32(int32(fn.Timeout)),
			Code: &lambdatypes.FunctionCode{
				ZipFile: archive,
			},
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create function %s: %w", fn.Name, err)
	}
	return nil
}

func (c *Client) updateFunction(ctx context.Context, fn FunctionConfig, archive []byte) error {
	_, err := c.lambda.UpdateFunctionCode(ctx, &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(fn.Name),
		ZipFile:      archive,
	})
	if err != nil {
		return fmt.Errorf("failed to update code of function %s: %w", fn.Name, err)
	}

	_, err = c.lambda.UpdateFunctionConfiguration(ctx, &lambda.UpdateFunctionConfigurationInput{
		FunctionName: aws.String(fn.Name),
		Handler:      aws.String(fn.Handler),
		Runtime:      lambdatypes.Runtime(fn.Runtime),
		MemorySize:   aws.Int32(int32(fn.MemorySize)),
		Timeout:      aws.Int32(int32(fn.Timeout)),
	})
	if err != nil {
		return fmt.Errorf("failed to update configuration of function %s: %w", fn.Name, err)
	}
	return nil
}

// Invoke calls a deployed function synchronously and returns its raw
// response payload.
func (c *Client) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	out, err := c.lambda.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(name),
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke function %s: %w", name, err)
	}
	if out.FunctionError != nil {
		return out.Payload, fmt.Errorf("function %s returned an error: %s", name, aws.ToString(out.FunctionError))
	}
	return out.Payload, nil
}

// FunctionInfo is the deployed state of one function.
type FunctionInfo struct {
	Name       string
	Runtime    string
	Handler    string
	MemorySize int
	Timeout    int
	LastUpdate string
}

// FunctionInfo fetches the deployed configuration of a function. A nil
// result with a nil error means the function is not deployed.
func (c *Client) FunctionInfo(ctx context.Context, name string) (*FunctionInfo, error) {
	out, err := c.lambda.GetFunctionConfiguration(ctx, &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(name),
	})
	if err != nil {
		if isErrorCode(err, "ResourceNotFoundException") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe function %s: %w", name, err)
	}

	return &FunctionInfo{
		Name:       aws.ToString(out.FunctionName),
		Runtime:    string(out.Runtime),
		Handler:    aws.ToString(out.Handler),
		MemorySize: int(aws.ToInt32(out.MemorySize)),
		Timeout:    int(aws.ToInt32(out.Timeout)),
		LastUpdate: aws.ToString(out.LastModified),
	}, nil
}

// isErrorCode reports whether err is an AWS API error with the given code.
func isErrorCode(err error, code string) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == code
}

// retryOnCode runs fn, retrying a few times with a flat delay while it keeps
// failing with the given API error code.
func retryOnCode(ctx context.Context, code string, fn func() error) error {
	const attempts = 5

	var err error
	for i := range attempts {
		err = fn()
		if err == nil || !isErrorCode(err, code) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return err
}
