package sensitive

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Document seals and opens allow-listed fields of encoded documents.
// It decodes through a DocumentCodec, walks the tree with a Walker and
// encodes the result with member order preserved.
//
// Documents are safe for concurrent use.
type Document struct {
	codec  DocumentCodec
	walker *Walker
}

// NewDocument returns a Document for codec backed by walker.
func NewDocument(codec DocumentCodec, walker *Walker) *Document {
	return &Document{codec: codec, walker: walker}
}

// ContentType returns the codec's MIME type.
func (d *Document) ContentType() string {
	return d.codec.ContentType()
}

// Store seals the document for storage. With writes disabled the input is
// returned as is, byte for byte.
func (d *Document) Store(ctx context.Context, data []byte) ([]byte, error) {
	return d.run(ctx, SignalDocumentStore, d.walker.WriteDisabled(), data, func(v Value) (Value, Stats, error) {
		return d.walker.DumpStats(v)
	})
}

// Load opens the document's envelopes.
func (d *Document) Load(ctx context.Context, data []byte) ([]byte, error) {
	return d.run(ctx, SignalDocumentLoad, false, data, func(v Value) (Value, Stats, error) {
		return d.walker.LoadStats(v)
	})
}

// Display opens the document and masks its allow-listed fields, for logs
// and support tooling.
func (d *Document) Display(ctx context.Context, data []byte) ([]byte, error) {
	return d.run(ctx, SignalDocumentLoad, false, data, func(v Value) (Value, Stats, error) {
		opened, st, err := d.walker.LoadStats(v)
		if err != nil {
			return v, st, err
		}
		return d.walker.Mask(opened), st, nil
	})
}

// run decodes, transforms and encodes data. With skip set the input is
// returned unchanged once the keys are known to be loaded.
func (d *Document) run(ctx context.Context, signal capitan.Signal, skip bool, data []byte, transform func(Value) (Value, Stats, error)) ([]byte, error) {
	start := time.Now()

	var st Stats
	var retErr error
	var retData []byte
	defer func() {
		emitDocument(ctx, signal, d.codec.ContentType(), len(retData), time.Since(start), st, retErr)
	}()

	if _, err := d.walker.Sealer().KeyStore(); err != nil {
		retErr = err
		return nil, retErr
	}
	if skip {
		retData = data
		return retData, nil
	}

	v, err := d.codec.Decode(data)
	if err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	out, stats, err := transform(v)
	st = stats
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, err = d.codec.Encode(out)
	if err != nil {
		retErr = newCodecError(ErrMarshal, err)
		return nil, retErr
	}
	return retData, nil
}
