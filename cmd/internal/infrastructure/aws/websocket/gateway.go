package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/labstack/gommon/log"
)

// HeaderConnectionID is set by the API Gateway integration on every
// forwarded $connect, $disconnect and $default request.
const HeaderConnectionID = "X-Connection-Id"

// ErrConnectionGone means the gateway no longer knows the connection.
// Callers should drop their record of it.
var ErrConnectionGone = errors.New("websocket connection is gone")

type GatewayClient interface {
	PostToConnection(ctx context.Context, connID string, data interface{}) error
	DeleteConnection(ctx context.Context, connID string) error
}

type AWSGatewayClient struct {
	client *apigatewaymanagementapi.Client
}

func NewAWSGatewayClient(ctx context.Context, endpoint, region string) (*AWSGatewayClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &AWSGatewayClient{client: client}, nil
}

func (g *AWSGatewayClient) PostToConnection(ctx context.Context, connID string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = g.client.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(connID),
		Data:         payload,
	})

	var gone *types.GoneException
	if errors.As(err, &gone) {
		return ErrConnectionGone
	}
	if err != nil {
		log.Warnf("failed to push to connection %s: %v", connID, err)
	}
	return err
}

func (g *AWSGatewayClient) DeleteConnection(ctx context.Context, connID string) error {
	_, err := g.client.DeleteConnection(ctx, &apigatewaymanagementapi.DeleteConnectionInput{
		ConnectionId: aws.String(connID),
	})

	var gone *types.GoneException
	if errors.As(err, &gone) {
		return nil
	}
	return err
}

// NoopGateway drops every message. Used when no gateway endpoint is configured.
type NoopGateway struct{}

func (NoopGateway) PostToConnection(context.Context, string, interface{}) error { return nil }

func (NoopGateway) DeleteConnection(context.Context, string) error { return nil }
