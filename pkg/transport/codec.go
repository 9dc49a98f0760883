package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	mcperrors "github.com/ajitpratap0/mcp-core-go/pkg/errors"
	"github.com/ajitpratap0/mcp-core-go/pkg/logging"
	"github.com/ajitpratap0/mcp-core-go/pkg/observability"
	"github.com/ajitpratap0/mcp-core-go/pkg/protocol"
)

// Codec converts between wire frames and protocol messages
type Codec struct {
	logger              logging.Logger
	metrics             *observability.Metrics
	tracer              *observability.Tracer
	maxBatchConcurrency int
}

// Option configures a Codec
type Option func(*Codec)

// WithLogger sets the logger for decode and encode diagnostics
func WithLogger(logger logging.Logger) Option {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables Prometheus metrics
func WithMetrics(metrics *observability.Metrics) Option {
	return func(c *Codec) {
		c.metrics = metrics
	}
}

// WithTracer sets the tracer used for decode and encode spans
func WithTracer(tracer *observability.Tracer) Option {
	return func(c *Codec) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithMaxBatchConcurrency bounds the goroutines used to decode one batch.
// Values below one are ignored.
func WithMaxBatchConcurrency(n int) Option {
	return func(c *Codec) {
		if n > 0 {
			c.maxBatchConcurrency = n
		}
	}
}

// NewCodec creates a codec. Without options it logs nothing, records no
// metrics and traces through the global OpenTelemetry provider.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		logger:              logging.NewNopLogger(),
		maxBatchConcurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = observability.NewTracer(nil)
	}
	c.logger = c.logger.WithFields(logging.String("component", "codec"))
	return c
}

// Decoded is the outcome of decoding one message: exactly one of Message
// and Error is set
type Decoded struct {
	Message protocol.Message
	Error   *protocol.ErrorResponse
}

// Decode parses a single JSON-RPC message. Failures are returned as an error
// reply carrying the frame's request id when it can be recovered.
func (c *Codec) Decode(ctx context.Context, data []byte) (protocol.Message, *protocol.ErrorResponse) {
	ctx, span := c.tracer.StartMessageSpan(ctx, "decode", "")
	defer span.End()

	start := time.Now()
	msg, err := protocol.ParseMessage(data)
	if err != nil {
		errData := mcperrors.ToErrorData(err)
		c.metrics.ObserveDecodeError(errData.Code, time.Since(start))
		c.tracer.RecordError(ctx, err)
		span.SetAttributes(observability.AttrErrorCode.Int(int(errData.Code)))
		c.logger.WithContext(ctx).WithError(err).Warn("failed to decode message",
			logging.Int("size", len(data)))

		return nil, &protocol.ErrorResponse{
			Envelope: protocol.Envelope{JSONRPC: protocol.JSONRPCVersion},
			ID:       protocol.PeekID(data),
			Error:    errData,
		}
	}

	method := methodOf(msg)
	c.metrics.ObserveDecoded(msg.Kind(), time.Since(start))
	c.tracer.SetMessage(ctx, msg.Kind(), method)
	c.logger.WithContext(ctx).Debug("decoded message", logging.Kind(msg.Kind()), logging.Method(method))
	return msg, nil
}

// DecodeFrame decodes a frame holding either one message or a batch array.
// An empty batch yields a single invalid request reply. The only Go error is
// cancellation of ctx while a batch is being decoded.
func (c *Codec) DecodeFrame(ctx context.Context, data []byte) ([]Decoded, error) {
	elems, isBatch, err := protocol.SplitBatch(data)
	if !isBatch {
		msg, errResp := c.Decode(ctx, data)
		return []Decoded{{Message: msg, Error: errResp}}, nil
	}
	if err != nil {
		c.tracer.RecordError(ctx, err)
		c.logger.WithContext(ctx).WithError(err).Warn("failed to split batch")
		errResp := &protocol.ErrorResponse{
			Envelope: protocol.Envelope{JSONRPC: protocol.JSONRPCVersion},
			Error:    mcperrors.ToErrorData(err),
		}
		return []Decoded{{Error: errResp}}, nil
	}

	frames := make([][]byte, len(elems))
	for i, e := range elems {
		frames[i] = e
	}
	return c.DecodeBatch(ctx, frames)
}

// DecodeBatch decodes frames concurrently. Results keep the order of frames.
func (c *Codec) DecodeBatch(ctx context.Context, frames [][]byte) ([]Decoded, error) {
	ctx, span := c.tracer.StartSpan(ctx, "mcp.decode_batch")
	defer span.End()
	span.SetAttributes(observability.AttrBatchSize.Int(len(frames)))

	results := make([]Decoded, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxBatchConcurrency)
	for i, frame := range frames {
		i, frame := i, frame
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			msg, errResp := c.Decode(gctx, frame)
			results[i] = Decoded{Message: msg, Error: errResp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.tracer.RecordError(ctx, err)
		return nil, err
	}
	return results, nil
}

// Encode serializes a message for the wire. protocol.Nil encodes to no bytes
// and no error: nothing is sent in reply to a notification.
func (c *Codec) Encode(ctx context.Context, msg protocol.Message) ([]byte, error) {
	if protocol.IsNil(msg) {
		c.logger.WithContext(ctx).Debug("nothing to send for notification reply")
		return nil, nil
	}

	ctx, span := c.tracer.StartMessageSpan(ctx, "encode", methodOf(msg))
	defer span.End()

	data, err := protocol.MarshalMessage(msg)
	if err != nil {
		c.tracer.RecordError(ctx, err)
		c.logger.WithContext(ctx).WithError(err).Error("failed to encode message", logging.Kind(msg.Kind()))
		return nil, err
	}

	c.metrics.ObserveEncoded(msg.Kind())
	c.tracer.SetMessage(ctx, msg.Kind(), methodOf(msg))
	return data, nil
}

// EncodeBatch serializes messages as a batch array, skipping protocol.Nil.
// When every message is Nil there is nothing to send and no bytes are returned.
func (c *Codec) EncodeBatch(ctx context.Context, msgs []protocol.Message) ([]byte, error) {
	var buf bytes.Buffer
	n := 0
	for _, msg := range msgs {
		data, err := c.Encode(ctx, msg)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		if n == 0 {
			buf.WriteByte('[')
		} else {
			buf.WriteByte(',')
		}
		buf.Write(data)
		n++
	}
	if n == 0 {
		return nil, nil
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// NewRequest creates a request with a fresh UUID id
func (c *Codec) NewRequest(method string, params interface{}) (*protocol.Request, error) {
	req, err := protocol.NewRequest(protocol.NewRequestID(), method, params)
	if err != nil {
		return nil, mcperrors.WrapError(err, mcperrors.CodeInvalidParams, "failed to build request",
			mcperrors.CategoryValidation, mcperrors.SeverityError).
			WithContext(&mcperrors.Context{Method: method, Component: "codec"})
	}
	return req, nil
}

// ErrorReply builds the error reply for a failed request
func (c *Codec) ErrorReply(req *protocol.Request, err error) *protocol.ErrorResponse {
	var id json.RawMessage
	if req != nil {
		id = req.ID
	}
	return &protocol.ErrorResponse{
		Envelope: protocol.Envelope{JSONRPC: protocol.JSONRPCVersion},
		ID:       id,
		Error:    mcperrors.ToErrorData(err),
	}
}

func methodOf(msg protocol.Message) string {
	switch m := msg.(type) {
	case *protocol.Request:
		return m.Method
	case *protocol.Notification:
		return m.Method
	}
	return ""
}
