package awsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
)

// ErrSecretNotFound is returned when the credentials secret does not exist.
var ErrSecretNotFound = errors.New("secret not found")

// SecretsAPI is the part of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// BackendCredentials are the session values stored in the secret as JSON.
type BackendCredentials struct {
	Session   string `json:"session"`
	CSRFToken string `json:"csrfToken"`
}

// LoadAWSConfig initializes and returns an AWS SDK configuration.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return cfg, nil
}

// NewSecretsManagerClient initializes the AWS Secrets Manager client.
func NewSecretsManagerClient(cfg aws.Config) *secretsmanager.Client {
	return secretsmanager.NewFromConfig(cfg)
}

// FetchBackendCredentials reads the backend session from a secret.
func FetchBackendCredentials(ctx context.Context, api SecretsAPI, secretID string) (BackendCredentials, error) {
	out, err := api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return BackendCredentials{}, fmt.Errorf("%w: %s", ErrSecretNotFound, secretID)
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return BackendCredentials{}, fmt.Errorf("failed to get secret %s: %s: %w", secretID, apiErr.ErrorCode(), err)
		}
		return BackendCredentials{}, fmt.Errorf("failed to get secret %s: %w", secretID, err)
	}

	if out.SecretString == nil {
		return BackendCredentials{}, fmt.Errorf("secret %s has no string value", secretID)
	}

	var creds BackendCredentials
	if err := json.Unmarshal([]byte(*out.SecretString), &creds); err != nil {
		return BackendCredentials{}, fmt.Errorf("failed to parse secret %s: %w", secretID, err)
	}
	return creds, nil
}
