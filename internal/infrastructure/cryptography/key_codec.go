package cryptography

import (
	"bufio"
	"bytes"
	"fmt"
	"math/big"
	"strings"

	rsaDomain "rsa_forge_service/internal/domain/rsa"
)

// Labeled hex block markers. The format is a fixed block of one hexadecimal
// big-integer literal per labeled line, e.g.
//
//	=== KEY FACTORS ===
//	n: 0x...
//	p: 0x...
//	q: 0x...
//	e: 0x...
//	d: 0x...
//	=== END ===
const (
	keyFactorsHeader = "=== KEY FACTORS ==="
	publicKeyHeader  = "=== PUBLIC KEY ==="
	privateKeyHeader = "=== PRIVATE KEY ==="
	blockFooter      = "=== END ==="
)

// keyCodec struct that implements the KeyCodec interface
type keyCodec struct{}

// NewKeyCodec creates a codec for the labeled hex block key format.
func NewKeyCodec() rsaDomain.KeyCodec {
	return &keyCodec{}
}

// EncodeKey serializes a full key as a labeled hex block.
func (c *keyCodec) EncodeKey(key *rsaDomain.Key) ([]byte, error) {
	if key == nil || key.N == nil || key.P == nil || key.Q == nil || key.E == nil || key.D == nil {
		return nil, fmt.Errorf("%w: key has unset factors", rsaDomain.ErrInvalidArgument)
	}

	labeled := []struct {
		label string
		value *big.Int
	}{
		{"n", key.N}, {"p", key.P}, {"q", key.Q}, {"e", key.E}, {"d", key.D},
	}
	return encodeBlock(keyFactorsHeader, labeled)
}

// DecodeKey parses a full key from a labeled hex block.
func (c *keyCodec) DecodeKey(data []byte) (*rsaDomain.Key, error) {
	values, err := decodeBlock(data, keyFactorsHeader, []string{"n", "p", "q", "e", "d"})
	if err != nil {
		return nil, err
	}

	return &rsaDomain.Key{
		N:      values["n"],
		P:      values["p"],
		Q:      values["q"],
		E:      values["e"],
		D:      values["d"],
		KeyLen: uint(values["n"].BitLen()),
	}, nil
}

// EncodePublicKey serializes the (n, d) projection as a labeled hex block.
func (c *keyCodec) EncodePublicKey(key *rsaDomain.PublicKey) ([]byte, error) {
	if key == nil || key.N == nil || key.D == nil {
		return nil, fmt.Errorf("%w: public key has unset factors", rsaDomain.ErrInvalidArgument)
	}

	labeled := []struct {
		label string
		value *big.Int
	}{
		{"n", key.N}, {"d", key.D},
	}
	return encodeBlock(publicKeyHeader, labeled)
}

// DecodePublicKey parses the (n, d) projection from a labeled hex block.
func (c *keyCodec) DecodePublicKey(data []byte) (*rsaDomain.PublicKey, error) {
	values, err := decodeBlock(data, publicKeyHeader, []string{"n", "d"})
	if err != nil {
		return nil, err
	}

	return &rsaDomain.PublicKey{
		N:      values["n"],
		D:      values["d"],
		KeyLen: uint(values["n"].BitLen()),
	}, nil
}

// EncodePrivateKey serializes the (n, e) projection as a labeled hex block.
func (c *keyCodec) EncodePrivateKey(key *rsaDomain.PrivateKey) ([]byte, error) {
	if key == nil || key.N == nil || key.E == nil {
		return nil, fmt.Errorf("%w: private key has unset factors", rsaDomain.ErrInvalidArgument)
	}

	labeled := []struct {
		label string
		value *big.Int
	}{
		{"n", key.N}, {"e", key.E},
	}
	return encodeBlock(privateKeyHeader, labeled)
}

// DecodePrivateKey parses the (n, e) projection from a labeled hex block.
func (c *keyCodec) DecodePrivateKey(data []byte) (*rsaDomain.PrivateKey, error) {
	values, err := decodeBlock(data, privateKeyHeader, []string{"n", "e"})
	if err != nil {
		return nil, err
	}

	return &rsaDomain.PrivateKey{
		N:      values["n"],
		E:      values["e"],
		KeyLen: uint(values["n"].BitLen()),
	}, nil
}

func encodeBlock(header string, labeled []struct {
	label string
	value *big.Int
}) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, header)
	for _, entry := range labeled {
		fmt.Fprintf(&buf, "%s: %#x\n", entry.label, entry.value)
	}
	fmt.Fprintln(&buf, blockFooter)

	return buf.Bytes(), nil
}

func decodeBlock(data []byte, header string, labels []string) (map[string]*big.Int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != header {
		return nil, fmt.Errorf("%w: missing %q header", rsaDomain.ErrInvalidArgument, header)
	}

	values := make(map[string]*big.Int, len(labels))
	for _, label := range labels {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: truncated block, expected %q line", rsaDomain.ErrInvalidArgument, label)
		}
		line := strings.TrimSpace(scanner.Text())

		prefix := label + ":"
		if !strings.HasPrefix(line, prefix) {
			return nil, fmt.Errorf("%w: expected %q line, got %q", rsaDomain.ErrInvalidArgument, label, line)
		}

		token := strings.TrimSpace(strings.TrimPrefix(line, prefix))
		value, ok := new(big.Int).SetString(token, 0)
		if !ok {
			return nil, fmt.Errorf("%w: malformed %q value %q", rsaDomain.ErrInvalidArgument, label, token)
		}
		values[label] = value
	}

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != blockFooter {
		return nil, fmt.Errorf("%w: missing %q footer", rsaDomain.ErrInvalidArgument, blockFooter)
	}

	return values, nil
}
