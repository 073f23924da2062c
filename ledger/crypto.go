package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

type Hash32 [sha256.Size]byte              // 32
type PublicKey [ed25519.PublicKeySize]byte // 32
type PrivateKey [ed25519.SeedSize]byte     // 32-byte seed
type Signature [ed25519.SignatureSize]byte // 64

// Sha256 is the digest used for both block hashing and the signing domain
func Sha256(data []byte) Hash32 {
	return sha256.Sum256(data)
}

// GenerateKeyPair creates a fresh Ed25519 keypair. The private key is the
// 32-byte seed; the public key is derived from it deterministically.
func GenerateKeyPair() (PrivateKey, PublicKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, PublicKey{}, fmt.Errorf("keypair generation failed: %w", err)
	}

	var private PrivateKey
	var public PublicKey
	copy(private[:], priv.Seed())
	copy(public[:], pub)
	return private, public, nil
}

// PublicKeyFor derives the public key from a private seed
func PublicKeyFor(priv PrivateKey) PublicKey {
	key := ed25519.NewKeyFromSeed(priv[:])
	var public PublicKey
	copy(public[:], key.Public().(ed25519.PublicKey))
	return public
}

// Sign produces a 64-byte Ed25519 signature over message
func Sign(message []byte, priv PrivateKey) Signature {
	key := ed25519.NewKeyFromSeed(priv[:])
	sig := ed25519.Sign(key, message)

	var signature Signature
	copy(signature[:], sig)
	return signature
}

// Verify reports whether sig is a valid signature over message under pub.
// Malformed signatures report false rather than panicking.
func Verify(message []byte, sig Signature, pub PublicKey) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), message, sig[:])
}
