package sensitive

// Scalar seals and opens whole string values, with no field-name gating.
// Use it where an entire column is the sensitive datum.
type Scalar struct {
	sealer *Sealer
	lower  bool
}

// ScalarOption configures a Scalar.
type ScalarOption func(*Scalar)

// WithLowerCase lower-cases values before sealing them.
func WithLowerCase() ScalarOption {
	return func(s *Scalar) {
		s.lower = true
	}
}

// NewScalar returns a Scalar backed by sealer.
func NewScalar(sealer *Sealer, opts ...ScalarOption) *Scalar {
	s := &Scalar{sealer: sealer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dump seals value unless it is empty or already an envelope.
func (s *Scalar) Dump(value string) (string, error) {
	if _, err := s.sealer.KeyStore(); err != nil {
		return value, err
	}
	if value == "" || IsEncrypted(value) {
		return value, nil
	}
	if s.lower {
		return s.sealer.LowerEncrypt(value)
	}
	return s.sealer.Encrypt(value)
}

// Load opens value if it is an envelope and returns it unchanged otherwise.
func (s *Scalar) Load(value string) (string, error) {
	if _, err := s.sealer.KeyStore(); err != nil {
		return value, err
	}
	if value == "" || !IsEncrypted(value) {
		return value, nil
	}
	return s.sealer.Decrypt(value)
}

// DumpPtr is Dump for optional values. Nil stays nil.
func (s *Scalar) DumpPtr(value *string) (*string, error) {
	if value == nil {
		if _, err := s.sealer.KeyStore(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	out, err := s.Dump(*value)
	return &out, err
}

// LoadPtr is Load for optional values. Nil stays nil.
func (s *Scalar) LoadPtr(value *string) (*string, error) {
	if value == nil {
		if _, err := s.sealer.KeyStore(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	out, err := s.Load(*value)
	return &out, err
}
