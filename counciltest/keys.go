package counciltest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/iov-one/ledger"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyCondition returns the signature condition of given key.
func KeyCondition(key ed25519.PrivateKey) ledger.Condition {
	pub := key.Public().(ed25519.PublicKey)
	return ledger.NewCondition("sigs", "ed25519", pub)
}

// NewCondition returns a condition of a new, random ed25519 key.
func NewCondition() ledger.Condition {
	return KeyCondition(NewKey())
}

// SequenceID returns an ID encoded as if it was generated by the bucket
// sequence call.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
