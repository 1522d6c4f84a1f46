// Package gateway adapts travel operations to single-purpose Lambda
// functions invoked either through API Gateway or directly.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	"travel-assistant/pkg/common"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/observability"
)

// Operation runs one travel operation against a raw JSON request body.
type Operation func(ctx context.Context, body []byte) (interface{}, error)

// Bind decodes the body into Req before calling fn. An empty body
// decodes to the zero request so that validation reports the missing field.
func Bind[Req any, Res any](fn func(context.Context, Req) (Res, error)) Operation {
	return func(ctx context.Context, body []byte) (interface{}, error) {
		var req Req
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return nil, apperrors.NewValidationError("Invalid JSON body").WithCause(err)
			}
		}
		res, err := fn(ctx, req)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

// Option configures a Handler.
type Option func(*Handler)

// EnvelopeOnly treats every event as an API Gateway proxy event, even when
// its body is missing.
func EnvelopeOnly() Option {
	return func(h *Handler) {
		h.envelopeOnly = true
	}
}

// WithTracer traces each invocation as a subsegment.
func WithTracer(tracer *observability.Tracer) Option {
	return func(h *Handler) {
		h.tracer = tracer
	}
}

// Handler serves one operation as a Lambda function.
type Handler struct {
	operation    string
	op           Operation
	errors       *apperrors.ErrorHandler
	metrics      *observability.Metrics
	tracer       *observability.Tracer
	logger       *zap.Logger
	envelopeOnly bool
}

// NewHandler creates a handler for the named operation.
func NewHandler(
	operation string,
	op Operation,
	errorHandler *apperrors.ErrorHandler,
	metrics *observability.Metrics,
	logger *zap.Logger,
	opts ...Option,
) *Handler {
	h := &Handler{
		operation: operation,
		op:        op,
		errors:    errorHandler,
		metrics:   metrics,
		logger:    logger.With(zap.String("operation", operation)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// invocation is the part of an API Gateway proxy event the handler reads.
// REST (v1) and HTTP (v2) events share these fields.
type invocation struct {
	Body            *string         `json:"body"`
	IsBase64Encoded bool            `json:"isBase64Encoded"`
	HTTPMethod      string          `json:"httpMethod"`
	RequestContext  json.RawMessage `json:"requestContext"`
}

// Handle is the Lambda entry point. Errors are always reported in the
// response, never returned to the runtime.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	ctx = common.EnrichContext(ctx, requestID(ctx))

	envelope, body, err := h.unwrap(event)
	var status int
	var payload interface{}
	switch {
	case err != nil:
		status, payload = h.failure(ctx, err)
	case envelope && preflight(event):
		status, payload = http.StatusOK, map[string]interface{}{}
	default:
		status, payload = h.run(ctx, body)
	}

	h.metrics.RecordOperation(ctx, h.operation, common.GetElapsedTime(ctx), status)

	if !envelope {
		return payload, nil
	}
	return h.respond(status, payload), nil
}

func (h *Handler) unwrap(event json.RawMessage) (bool, []byte, error) {
	var inv invocation
	if err := json.Unmarshal(event, &inv); err != nil {
		// Not an object: hand it to the operation, which rejects it.
		return h.envelopeOnly, event, nil
	}

	isEnvelope := h.envelopeOnly ||
		(inv.Body != nil && *inv.Body != "") ||
		inv.HTTPMethod != "" ||
		len(inv.RequestContext) > 0
	if !isEnvelope {
		return false, event, nil
	}

	if inv.Body == nil {
		return true, nil, nil
	}
	body := []byte(*inv.Body)
	if inv.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(*inv.Body)
		if err != nil {
			return true, nil, apperrors.NewValidationError("Invalid base64 body").WithCause(err)
		}
		body = decoded
	}
	return true, body, nil
}

func (h *Handler) run(ctx context.Context, body []byte) (status int, payload interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			status, payload = h.failure(ctx, apperrors.NewInternalError(fmt.Errorf("panic: %v", rec)))
		}
	}()

	var result interface{}
	call := func(ctx context.Context) error {
		var err error
		result, err = h.op(ctx, body)
		return err
	}

	var err error
	if h.tracer != nil {
		err = h.tracer.TraceFunction(ctx, h.operation, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return h.failure(ctx, err)
	}
	return http.StatusOK, result
}

func (h *Handler) failure(ctx context.Context, err error) (int, interface{}) {
	h.tracer.RecordError(ctx, err)
	if id, ok := common.GetRequestID(ctx); ok && id != "" {
		h.logger.Debug("Invocation failed", zap.String("request_id", id), zap.Error(err))
	}
	return h.errors.Resolve(err)
}

func (h *Handler) respond(status int, payload interface{}) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		status = http.StatusInternalServerError
		encoded = []byte(`{"error":"Internal server error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    common.ResponseHeaders(),
		Body:       string(encoded),
	}
}

func preflight(event json.RawMessage) bool {
	var envelope struct {
		HTTPMethod     string `json:"httpMethod"`
		RequestContext struct {
			HTTP struct {
				Method string `json:"method"`
			} `json:"http"`
		} `json:"requestContext"`
	}
	if err := json.Unmarshal(event, &envelope); err != nil {
		return false
	}
	return envelope.HTTPMethod == http.MethodOptions || envelope.RequestContext.HTTP.Method == http.MethodOptions
}

func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
