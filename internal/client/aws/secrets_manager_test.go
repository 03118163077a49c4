package aws_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	awsclient "github.com/cyphera/cyphera-relay/internal/client/aws"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

type fakeSecrets struct {
	value *string
	err   error
	ids   []string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.ids = append(f.ids, aws.ToString(in.SecretId))
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.value}, nil
}

func TestSecretsManagerClient_GetSecretString(t *testing.T) {
	tests := []struct {
		name     string
		arn      string
		fallback string
		fake     *fakeSecrets
		want     string
		wantErr  bool
	}{
		{name: "from secrets manager", arn: "arn:secret", fake: &fakeSecrets{value: aws.String("from-sm")}, want: "from-sm"},
		{name: "fetch fails uses fallback", arn: "arn:secret", fallback: "from-env", fake: &fakeSecrets{err: errors.New("denied")}, want: "from-env"},
		{name: "no arn uses fallback", fallback: "from-env", fake: &fakeSecrets{}, want: "from-env"},
		{name: "nothing configured", fake: &fakeSecrets{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_SECRET_ARN", tt.arn)
			t.Setenv("TEST_SECRET", tt.fallback)

			client := awsclient.NewSecretsManagerClientWithAPI(tt.fake)
			got, err := client.GetSecretString(context.Background(), "TEST_SECRET_ARN", "TEST_SECRET")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.arn != "" {
				assert.Equal(t, []string{tt.arn}, tt.fake.ids)
			}
		})
	}
}
