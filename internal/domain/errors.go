package domain

import "fmt"

// ConfigurationError indicates an invalid topology configuration at build
// time: a dimension outside the supported range, or more metadata records
// than address slots. It is a programming/config mistake and is never
// retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "topology configuration: " + e.Reason
}

// InvalidAddressError indicates a node address outside [0, 2^d).
type InvalidAddressError struct {
	Address   int
	NodeCount int
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("address %d outside valid range [0, %d)", e.Address, e.NodeCount)
}

// EncodingError indicates input the message codec cannot represent: a rune
// outside the single-byte range on encode, or a malformed binary group on
// decode.
type EncodingError struct {
	Input  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %q: %s", e.Input, e.Reason)
}
