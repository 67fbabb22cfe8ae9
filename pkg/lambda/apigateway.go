package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FromAPIGateway converts an API Gateway proxy event into a generic request
func FromAPIGateway(event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		body = decoded
	}

	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
		RequestID:   requestID,
	}, nil
}

// ToAPIGateway converts a generic response into an API Gateway proxy response
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// WithLogging logs one structured line per invocation. errorHeaders are
// attached to the fallback 500 response, so CORS headers survive a handler
// that fails or panics.
func WithLogging(handler HandlerFunc, errorHeaders map[string]string) HandlerFunc {
	return func(ctx context.Context, req *Request) (resp *Response, err error) {
		start := time.Now()
		fields := logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"path":       req.Path,
		}

		defer func() {
			if recovered := recover(); recovered != nil {
				logrus.WithFields(fields).WithField("panic", recovered).Error("Handler panic")
				resp, err = InternalErrorResponse(errorHeaders), nil
			}

			fields["latency_ms"] = float64(time.Since(start).Nanoseconds()) / 1000000
			if resp != nil {
				fields["status_code"] = resp.StatusCode
			}

			switch {
			case resp == nil || resp.StatusCode >= 500:
				logrus.WithFields(fields).Error("Server error")
			case resp.StatusCode >= 400:
				logrus.WithFields(fields).Warn("Client error")
			default:
				logrus.WithFields(fields).Info("Request completed")
			}
		}()

		resp, err = handler(ctx, req)
		if err != nil {
			logrus.WithFields(fields).WithError(err).Error("Handler error")
			return InternalErrorResponse(errorHeaders), nil
		}
		if resp == nil {
			return InternalErrorResponse(errorHeaders), nil
		}
		return resp, nil
	}
}

// APIGatewayHandler adapts a HandlerFunc to the API Gateway proxy signature
func APIGatewayHandler(handler HandlerFunc, errorHeaders map[string]string) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	wrapped := WithLogging(handler, errorHeaders)

	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := FromAPIGateway(event)
		if err != nil {
			logrus.WithError(err).Warn("Malformed API Gateway event")
			resp, _ := JSONResponse(400, errorHeaders, map[string]string{
				"error": "Invalid request body",
				"code":  "invalid_input",
			})
			return resp.ToAPIGateway(), nil
		}

		resp, _ := wrapped(ctx, req)
		return resp.ToAPIGateway(), nil
	}
}

// Start runs handler as an API Gateway proxy Lambda function
func Start(handler HandlerFunc, errorHeaders map[string]string) {
	awslambda.Start(APIGatewayHandler(handler, errorHeaders))
}
