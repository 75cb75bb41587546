package cser

// MarshalBinaryAdapter runs marshalCser over a fresh writer and returns its
// zero-padded bytes. A Failure raised while writing is returned as the error.
func MarshalBinaryAdapter(marshalCser func(*Writer) error) (raw []byte, err error) {
	defer Catch(&err)

	w := NewWriter()
	if err := marshalCser(w); err != nil {
		return nil, err
	}
	return w.BitsW.Bytes, nil
}

// UnmarshalBinaryAdapter runs unmarshalCser over raw. Trailing bits after the
// record are left unchecked: records are not padded canonically.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(*Reader) error) (err error) {
	defer Catch(&err)

	return unmarshalCser(NewReader(raw))
}
