package awsclient

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSecretsAPI struct {
	mock.Mock
}

func (m *MockSecretsAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, aws.ToString(params.SecretId))
	out, _ := args.Get(0).(*secretsmanager.GetSecretValueOutput)
	return out, args.Error(1)
}

func TestFetchBackendCredentials(t *testing.T) {
	api := &MockSecretsAPI{}
	api.On("GetSecretValue", mock.Anything, "admin-console/backend").Return(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"session":"abc","csrfToken":"tok"}`),
	}, nil)

	creds, err := FetchBackendCredentials(context.Background(), api, "admin-console/backend")
	require.NoError(t, err)
	assert.Equal(t, BackendCredentials{Session: "abc", CSRFToken: "tok"}, creds)
	api.AssertExpectations(t)
}

func TestFetchBackendCredentials_NotFound(t *testing.T) {
	api := &MockSecretsAPI{}
	api.On("GetSecretValue", mock.Anything, "missing").
		Return(nil, &types.ResourceNotFoundException{Message: aws.String("no such secret")})

	_, err := FetchBackendCredentials(context.Background(), api, "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestFetchBackendCredentials_APIError(t *testing.T) {
	api := &MockSecretsAPI{}
	api.On("GetSecretValue", mock.Anything, "locked").
		Return(nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"})

	_, err := FetchBackendCredentials(context.Background(), api, "locked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDeniedException")
	assert.NotErrorIs(t, err, ErrSecretNotFound)
}

func TestFetchBackendCredentials_BadPayload(t *testing.T) {
	api := &MockSecretsAPI{}
	api.On("GetSecretValue", mock.Anything, "binary").Return(&secretsmanager.GetSecretValueOutput{}, nil)
	api.On("GetSecretValue", mock.Anything, "garbage").Return(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String("not json"),
	}, nil)

	_, err := FetchBackendCredentials(context.Background(), api, "binary")
	assert.Error(t, err)
	_, err = FetchBackendCredentials(context.Background(), api, "garbage")
	assert.Error(t, err)
}
