// Package transport defines the boundary between the MCP message model and
// the component that moves bytes between endpoints.
//
// No concrete transport ships here. Reading and writing frames, connection
// lifecycle and retry policy belong to the embedding application, which
// implements Transport and uses a Codec to turn frames into messages and
// back.
//
// # Codec
//
// A Codec is stateless and safe for concurrent use. Decode never returns a Go
// error: every failure is turned into a well-formed error reply addressed to
// the request id when one can be recovered from the frame.
//
//	codec := transport.NewCodec(
//	    transport.WithLogger(logging.NewLogrusLogger(nil)),
//	    transport.WithMetrics(metrics),
//	)
//
//	msg, errResp := codec.Decode(ctx, frame)
//	if errResp != nil {
//	    reply, _ := codec.Encode(ctx, errResp)
//	    // write reply
//	}
//
// Replies to notifications are represented by protocol.Nil. Encode returns no
// bytes for it, so a transport writes nothing.
//
// # Batches
//
// DecodeFrame accepts either a single message or a JSON-RPC batch array.
// Batch elements are decoded concurrently, bounded by
// WithMaxBatchConcurrency, and results keep the order of the array.
package transport
