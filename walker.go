package sensitive

import (
	"context"
	"time"
)

// Stats counts the allow-listed leaves a walk touched.
type Stats struct {
	Transformed int // leaves encrypted or decrypted
	Passthrough int // leaves returned unchanged
}

func (s *Stats) record(res Result) {
	if res.Transformed() {
		s.Transformed++
	} else {
		s.Passthrough++
	}
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithFields replaces the allow-list. The default is DefaultFields().
func WithFields(fields FieldSet) WalkerOption {
	return func(w *Walker) {
		w.fields = fields
	}
}

// WithDisableWrite turns Dump into a no-op while Load keeps working.
// Used during migrations where old ciphertext must stay readable but no new
// ciphertext may be produced yet.
func WithDisableWrite(disabled bool) WalkerOption {
	return func(w *Walker) {
		w.disableWrite = disabled
	}
}

// Walker seals and opens the values of allow-listed members anywhere in a
// document.
//
// For each object member whose name is in the allow-list:
//   - a string is sealed on Dump (unless it already is an envelope) and
//     opened on Load (only if it is an envelope)
//   - a number or bool is sealed as its text on Dump and becomes a string
//   - null is left alone
//   - an array is handled element by element as if each element were the
//     member's value
//   - an object is walked with the same rules
//
// Members not in the allow-list are walked. Scalars reached any other way are
// returned unchanged. Dump and Load are idempotent and never modify their
// input.
type Walker struct {
	sealer       *Sealer
	fields       FieldSet
	disableWrite bool
}

// NewWalker returns a Walker backed by sealer.
func NewWalker(sealer *Sealer, opts ...WalkerOption) *Walker {
	w := &Walker{
		sealer: sealer,
		fields: DefaultFields(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Fields returns the allow-list in use.
func (w *Walker) Fields() FieldSet {
	return w.fields
}

// WriteDisabled reports whether Dump is a no-op.
func (w *Walker) WriteDisabled() bool {
	return w.disableWrite
}

// Sealer returns the underlying Sealer.
func (w *Walker) Sealer() *Sealer {
	return w.sealer
}

// Dump seals allow-listed values. The error is non-nil only when the Sealer
// is uninitialized.
func (w *Walker) Dump(v Value) (Value, error) {
	out, _, err := w.DumpStats(v)
	return out, err
}

// Load opens allow-listed envelopes. The error is non-nil only when the
// Sealer is uninitialized.
func (w *Walker) Load(v Value) (Value, error) {
	out, _, err := w.LoadStats(v)
	return out, err
}

// DumpStats is Dump that also reports what it touched.
func (w *Walker) DumpStats(v Value) (Value, Stats, error) {
	ks, err := w.sealer.KeyStore()
	if err != nil {
		return v, Stats{}, err
	}
	if w.disableWrite {
		return v, Stats{}, nil
	}

	start := time.Now()
	var st Stats
	out := w.walk(v, func(leaf Value) Value { return dumpLeaf(ks, leaf, &st) })
	emitWalk(context.Background(), SignalWalkerDump, st, time.Since(start))

	return out, st, nil
}

// LoadStats is Load that also reports what it touched.
func (w *Walker) LoadStats(v Value) (Value, Stats, error) {
	ks, err := w.sealer.KeyStore()
	if err != nil {
		return v, Stats{}, err
	}

	start := time.Now()
	var st Stats
	out := w.walk(v, func(leaf Value) Value { return loadLeaf(ks, leaf, &st) })
	emitWalk(context.Background(), SignalWalkerLoad, st, time.Since(start))

	return out, st, nil
}

// Mask returns a copy of v that is safe to display: every allow-listed
// scalar that is not an envelope is masked with a masker picked by member
// name. Envelopes and structure are kept. Mask needs no keys.
func (w *Walker) Mask(v Value) Value {
	return w.walkNamed(v, func(name string, leaf Value) Value {
		if leaf.kind == KindNull {
			return leaf
		}
		text := leaf.Text()
		if leaf.kind == KindString && IsEncrypted(text) {
			return leaf
		}
		return String(MaskerForField(name).Mask(text))
	})
}

// walk applies leaf to every scalar held by an allow-listed member.
func (w *Walker) walk(v Value, leaf func(Value) Value) Value {
	return w.walkNamed(v, func(_ string, x Value) Value { return leaf(x) })
}

func (w *Walker) walkNamed(v Value, leaf func(string, Value) Value) Value {
	switch v.kind {
	case KindObject:
		members := make([]Member, len(v.members))
		for i, m := range v.members {
			if w.fields.Contains(m.Key) {
				members[i] = Entry(m.Key, w.sensitive(m.Key, m.Value, leaf))
			} else {
				members[i] = Entry(m.Key, w.walkNamed(m.Value, leaf))
			}
		}
		return objectOf(members)
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = w.walkNamed(item, leaf)
		}
		return arrayOf(items)
	default:
		return v
	}
}

// sensitive handles the value of an allow-listed member.
func (w *Walker) sensitive(name string, v Value, leaf func(string, Value) Value) Value {
	switch v.kind {
	case KindObject:
		return w.walkNamed(v, leaf)
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = w.sensitive(name, item, leaf)
		}
		return arrayOf(items)
	default:
		return leaf(name, v)
	}
}

func dumpLeaf(ks *KeyStore, v Value, st *Stats) Value {
	switch v.kind {
	case KindString:
		if IsEncrypted(v.text) {
			st.record(passthrough(v.text, ErrAlreadySealed))
			return v
		}
		res := seal(ks, v.text)
		st.record(res)
		return String(res.Value)
	case KindNumber, KindBool:
		res := seal(ks, v.Text())
		st.record(res)
		if !res.Transformed() {
			return v
		}
		return String(res.Value)
	default:
		return v
	}
}

func loadLeaf(ks *KeyStore, v Value, st *Stats) Value {
	switch v.kind {
	case KindString:
		if !IsEncrypted(v.text) {
			st.record(passthrough(v.text, ErrNotEncrypted))
			return v
		}
		res := open(ks, v.text)
		st.record(res)
		return String(res.Value)
	case KindNumber, KindBool:
		st.record(passthrough(v.Text(), ErrNotEncrypted))
		return v
	default:
		return v
	}
}
