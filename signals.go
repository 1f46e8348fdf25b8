package sensitive

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for sensitive events. Payloads never carry plaintext or key material.
var (
	SignalKeyStoreInitialized = capitan.NewSignal("sensitive.keystore.initialized", "Key material published")
	SignalKeyStoreRejected    = capitan.NewSignal("sensitive.keystore.rejected", "Key material failed validation")
	SignalWalkerDump          = capitan.NewSignal("sensitive.walker.dump", "Document fields sealed")
	SignalWalkerLoad          = capitan.NewSignal("sensitive.walker.load", "Document fields opened")
	SignalDocumentStore       = capitan.NewSignal("sensitive.document.store", "Encoded document sealed")
	SignalDocumentLoad        = capitan.NewSignal("sensitive.document.load", "Encoded document opened")
	SignalProcessorCreated    = capitan.NewSignal("sensitive.processor.created", "Processor instantiated")
	SignalProcessorStore      = capitan.NewSignal("sensitive.processor.store", "Struct sealed and marshaled")
	SignalProcessorLoad       = capitan.NewSignal("sensitive.processor.load", "Struct unmarshaled and opened")
)

// Keys for typed event data.
var (
	KeyVersion          = capitan.NewStringKey("version")
	KeyVersionCount     = capitan.NewIntKey("version_count")
	KeyContentType      = capitan.NewStringKey("content_type")
	KeyTypeName         = capitan.NewStringKey("type_name")
	KeySize             = capitan.NewIntKey("size")
	KeyDuration         = capitan.NewDurationKey("duration")
	KeyTransformedCount = capitan.NewIntKey("transformed_count")
	KeyPassthroughCount = capitan.NewIntKey("passthrough_count")
	KeyError            = capitan.NewErrorKey("error")
)

// emitKeyStoreInitialized emits an event when key material is published.
func emitKeyStoreInitialized(ctx context.Context, latest string, versions int) {
	capitan.Emit(ctx, SignalKeyStoreInitialized,
		KeyVersion.Field(latest),
		KeyVersionCount.Field(versions),
	)
}

// emitKeyStoreRejected emits an error event when key material is invalid.
func emitKeyStoreRejected(ctx context.Context, err error) {
	capitan.Error(ctx, SignalKeyStoreRejected, KeyError.Field(err))
}

// emitWalk emits an event when a walker pass finishes.
func emitWalk(ctx context.Context, signal capitan.Signal, st Stats, duration time.Duration) {
	capitan.Emit(ctx, signal,
		KeyDuration.Field(duration),
		KeyTransformedCount.Field(st.Transformed),
		KeyPassthroughCount.Field(st.Passthrough),
	)
}

// emitDocument emits an event when a document store or load finishes.
func emitDocument(ctx context.Context, signal capitan.Signal, contentType string, size int, duration time.Duration, st Stats, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyTransformedCount.Field(st.Transformed),
		KeyPassthroughCount.Field(st.Passthrough),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, signal, fields...)
	} else {
		capitan.Emit(ctx, signal, fields...)
	}
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitProcessor emits an event when a processor store or load finishes.
func emitProcessor(ctx context.Context, signal capitan.Signal, contentType, typeName string, size int, duration time.Duration, fields int, err error) {
	data := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyTransformedCount.Field(fields),
	}
	if err != nil {
		data = append(data, KeyError.Field(err))
		capitan.Error(ctx, signal, data...)
	} else {
		capitan.Emit(ctx, signal, data...)
	}
}
