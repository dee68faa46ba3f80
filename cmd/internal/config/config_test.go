package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, time.Hour, cfg.Jobs.ReconcileInterval)
	assert.Equal(t, int64(1), cfg.MachineID)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost/dir?sslmode=disable")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATELIMIT_LIMIT", "3")
	t.Setenv("RATELIMIT_WINDOW", "30s")
	t.Setenv("MACHINE_ID", "12")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.RateLimit.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, int64(12), cfg.MachineID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"postgres without dsn", map[string]string{"AUTH_JWT_SECRET": "s", "DATABASE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"AUTH_JWT_SECRET": "s", "DATABASE_DRIVER": "mysql"}},
		{"zero limit", map[string]string{"AUTH_JWT_SECRET": "s", "RATELIMIT_LIMIT": "0"}},
		{"machine id too large", map[string]string{"AUTH_JWT_SECRET": "s", "MACHINE_ID": "2048"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestLogConfig_GommonLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, LogConfig{Level: "DEBUG"}.GommonLevel())
	assert.Equal(t, log.WARN, LogConfig{Level: "warning"}.GommonLevel())
	assert.Equal(t, log.INFO, LogConfig{Level: "whatever"}.GommonLevel())
}

type pagedParameters struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (p *pagedParameters) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	out := p.pages[p.calls]
	p.calls++
	return out, nil
}

func TestExportParameters_FollowsPages(t *testing.T) {
	const prefix = "/bizdirectory/test/"
	client := &pagedParameters{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{{Name: aws.String(prefix + "BIZ_TEST_ONE"), Value: aws.String("1")}},
			NextToken:  aws.String("next"),
		},
		{
			Parameters: []types.Parameter{{Name: aws.String(prefix + "BIZ_TEST_TWO"), Value: aws.String("2")}},
		},
	}}
	t.Cleanup(func() {
		_ = os.Unsetenv("BIZ_TEST_ONE")
		_ = os.Unsetenv("BIZ_TEST_TWO")
	})

	require.NoError(t, exportParameters(context.Background(), client, prefix))
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "1", os.Getenv("BIZ_TEST_ONE"))
	assert.Equal(t, "2", os.Getenv("BIZ_TEST_TWO"))
}
