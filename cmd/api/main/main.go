//go:build lambda
// +build lambda

package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/server"
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

var ginLambda *ginadapter.GinLambda

func init() {
	logger.InitLogger(os.Getenv("STAGE"))

	ctx := context.Background()
	cfg, err := server.LoadConfig(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	// The app lives for the whole execution environment; it is not closed
	// between invocations.
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize relay services", zap.Error(err))
	}

	ginLambda = ginadapter.New(server.NewRouter(app.Dependencies()))
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.Any("request", spew.Sdump(req)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
