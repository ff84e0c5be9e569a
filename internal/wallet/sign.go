package wallet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignMessage signs a message using EIP-191 (personal_sign).
// The message is prefixed with "\x19Ethereum Signed Message:\n<len>" before hashing.
// Returns a 65-byte signature (R || S || V).
func SignMessage(w *Wallet, ks KeystoreBackend, message []byte) ([]byte, error) {
	if !w.CanSign() {
		return nil, fmt.Errorf("%w: %q cannot sign", ErrWatchOnly, w.Name)
	}

	hexKey, err := ks.Retrieve(w.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("retrieving key: %w", err)
	}

	privKey, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	sig, err := crypto.Sign(eip191Hash(message), privKey)
	if err != nil {
		return nil, fmt.Errorf("signing message: %w", err)
	}

	// Adjust V from 0/1 to 27/28 for Ethereum compatibility.
	sig[64] += 27

	return sig, nil
}

// VerifyMessage recovers the signer address from an EIP-191 signature.
func VerifyMessage(message, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(sig))
	}

	recoverSig := make([]byte, 65)
	copy(recoverSig, sig)
	recoverSig[64] -= 27

	pubKey, err := crypto.SigToPub(eip191Hash(message), recoverSig)
	if err != nil {
		return common.Address{}, fmt.Errorf("recovering signer: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// VerifyKey proves the stored key belongs to the wallet's address by signing
// a challenge and recovering the signer. Run on unlock so a mismatched key is
// caught before any transaction is built.
func VerifyKey(w *Wallet, ks KeystoreBackend) error {
	msg := []byte("yieldcli unlock " + w.Name)
	sig, err := SignMessage(w, ks, msg)
	if err != nil {
		return err
	}
	got, err := VerifyMessage(msg, sig)
	if err != nil {
		return err
	}
	if got != w.Account() {
		return fmt.Errorf("%w: key for %q signs as %s, expected %s", ErrInvalidKey, w.Name, got.Hex(), w.Address)
	}
	return nil
}

func eip191Hash(message []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(message))
	return crypto.Keccak256(append([]byte(prefix), message...))
}

// Unlock verifies each wallet's key and copies it into the session, so
// later signing skips the keychain. Watch-only wallets are skipped.
func Unlock(m *Manager, session *Session, names ...string) ([]string, error) {
	keys := make(map[string]string)
	var unlocked []string
	for _, name := range names {
		w, err := m.Get(name)
		if err != nil {
			return nil, err
		}
		if !w.CanSign() {
			continue
		}
		if err := VerifyKey(w, m.Keystore()); err != nil {
			return nil, err
		}
		key, err := m.Keystore().Retrieve(w.KeyRef)
		if err != nil {
			return nil, fmt.Errorf("retrieving key: %w", err)
		}
		keys[w.KeyRef] = key
		unlocked = append(unlocked, name)
	}
	if err := session.PutAll(keys); err != nil {
		return nil, fmt.Errorf("writing session: %w", err)
	}
	return unlocked, nil
}

// Lock clears the session and the in-process key cache.
func Lock(session *Session) error {
	sessionCache.Range(func(k, _ any) bool {
		sessionCache.Delete(k)
		return true
	})
	return session.Clear()
}
