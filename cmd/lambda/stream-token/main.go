package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/handlers"
	"stream-token-backend/internal/services"
	"stream-token-backend/pkg/lambda"
)

var manager = lambda.NewManager(nil)

func handler(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var service services.TokenService

	container, err := manager.GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
	} else {
		service = container.TokenService
	}

	return handlers.NewStreamTokenHandler(service).Handle(ctx, req)
}

func main() {
	lambda.Start(handler, handlers.StreamTokenCORS)
}
