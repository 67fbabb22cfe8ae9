package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/handlers"
	"stream-token-backend/internal/services"
	"stream-token-backend/pkg/lambda"
)

var manager = lambda.NewManager(nil)

// handler resolves the warm container per invocation. A container that
// failed to build leaves the service nil, which the handler reports as a
// misconfiguration after its method checks.
func handler(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var service services.PaymentIntentService

	container, err := manager.GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
	} else {
		service = container.PaymentIntentService
	}

	return handlers.NewPaymentIntentHandler(service).Handle(ctx, req)
}

func main() {
	lambda.Start(handler, handlers.PaymentIntentCORS)
}
