package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/pbkdf2"
)

// Armored backup format constants
const (
	ArmorMagic       = "KBOARD"
	pbkdf2Iterations = 100000
	saltSize         = 16
	nonceSize        = 12
	keySize          = 32
	minPasswordLen   = 8
)

var (
	// ErrPasswordTooShort is returned by Seal for weak passwords.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLen)

	// ErrNotSealed means the input lacks the armor header.
	ErrNotSealed = errors.New("data is not an armored kboard backup")
)

// IsSealed reports whether data starts with the armor header.
func IsSealed(data []byte) bool {
	return strings.HasPrefix(strings.TrimSpace(string(data)), ArmorMagic+":")
}

// Seal encrypts plaintext with AES-256-GCM under a PBKDF2 key and returns
// "KBOARD:" followed by base58(salt || nonce || ciphertext).
func Seal(plaintext []byte, password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", ErrPasswordTooShort
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	return ArmorMagic + ":" + base58.Encode(out), nil
}

// Open reverses Seal.
func Open(armored []byte, password string) ([]byte, error) {
	s := strings.TrimSpace(string(armored))
	if !strings.HasPrefix(s, ArmorMagic+":") {
		return nil, ErrNotSealed
	}

	data := base58.Decode(strings.TrimPrefix(s, ArmorMagic+":"))

	// 16 is the GCM tag
	if len(data) < saltSize+nonceSize+16 {
		return nil, fmt.Errorf("armored data too short")
	}

	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+nonceSize]
	ciphertext := data[saltSize+nonceSize:]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}
