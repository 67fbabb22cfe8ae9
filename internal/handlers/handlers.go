package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/middleware"
	"stream-token-backend/pkg/lambda"
)

// GinHandler serves a framework-agnostic handler from gin, so the server and
// the Lambda functions run the same code. errorHeaders are sent with the
// fallback 500 response.
func GinHandler(handler lambda.HandlerFunc, errorHeaders map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logrus.WithFields(logrus.Fields{
					"request_id": c.GetString(middleware.RequestIDKey),
					"path":       c.Request.URL.Path,
					"panic":      recovered,
				}).Error("Handler panic")
				writeResponse(c, lambda.InternalErrorResponse(errorHeaders))
			}
		}()

		req, err := requestFromGin(c)
		if err != nil {
			writeResponse(c, lambda.InternalErrorResponse(errorHeaders))
			return
		}

		resp, err := handler(c.Request.Context(), req)
		if err != nil || resp == nil {
			logrus.WithFields(logrus.Fields{
				"request_id": req.RequestID,
				"path":       req.Path,
				"error":      err,
			}).Error("Handler error")
			resp = lambda.InternalErrorResponse(errorHeaders)
		}

		writeResponse(c, resp)
	}
}

func requestFromGin(c *gin.Context) (*lambda.Request, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
	}

	return &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     firstValues(c.Request.Header),
		QueryParams: firstValues(c.Request.URL.Query()),
		Body:        body,
		PathParams:  pathParams(c.Params),
		RequestID:   c.GetString(middleware.RequestIDKey),
	}, nil
}

func writeResponse(c *gin.Context, resp *lambda.Response) {
	for key, value := range resp.Headers {
		c.Header(key, value)
	}

	if len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		return
	}
	c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}

// firstValues flattens multi-valued maps the way API Gateway's single-value fields do
func firstValues(values map[string][]string) map[string]string {
	flat := make(map[string]string, len(values))
	for key, list := range values {
		if len(list) > 0 {
			flat[key] = list[0]
		}
	}
	return flat
}

func pathParams(params gin.Params) map[string]string {
	flat := make(map[string]string, len(params))
	for _, param := range params {
		flat[param.Key] = param.Value
	}
	return flat
}

// health reports liveness and which credentials are present
func health(deploymentMode string, configured map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "stream-token-backend",
			"mode":       deploymentMode,
			"configured": configured,
		})
	}
}
