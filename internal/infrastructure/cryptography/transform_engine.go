package cryptography

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/pkg/logger"
)

// transformEngine struct that implements the TransformEngine interface
type transformEngine struct {
	logger logger.Logger
}

// NewTransformEngine creates and returns a new instance of transformEngine
func NewTransformEngine(logger logger.Logger) (rsaDomain.TransformEngine, error) {
	return &transformEngine{
		logger: logger,
	}, nil
}

// Transform computes unit^exponent mod modulus. Pure function; total for any
// non-negative unit below the modulus and positive exponent.
func (t *transformEngine) Transform(unit, exponent, modulus *big.Int) *big.Int {
	return new(big.Int).Exp(unit, exponent, modulus)
}

// EncryptStream reads each byte of r, transforms it with (exponent, modulus)
// and writes one hexadecimal big-integer token per line to w.
func (t *transformEngine) EncryptStream(r io.Reader, w io.Writer, exponent, modulus *big.Int) error {
	if exponent == nil || modulus == nil {
		return fmt.Errorf("%w: exponent and modulus cannot be nil", rsaDomain.ErrInvalidArgument)
	}

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	unit := new(big.Int)

	units := 0
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read plaintext unit: %w", err)
		}

		unit.SetUint64(uint64(b))
		if _, err := fmt.Fprintf(bw, "%#x\n", t.Transform(unit, exponent, modulus)); err != nil {
			return fmt.Errorf("failed to write ciphertext token: %w", err)
		}
		units++
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush ciphertext: %w", err)
	}

	t.logger.Info("Encrypted ", units, " units")
	return nil
}

// DecryptStream parses one hexadecimal big-integer token per line from r,
// transforms it with (exponent, modulus) and writes the recovered byte to w.
func (t *transformEngine) DecryptStream(r io.Reader, w io.Writer, exponent, modulus *big.Int) error {
	if exponent == nil || modulus == nil {
		return fmt.Errorf("%w: exponent and modulus cannot be nil", rsaDomain.ErrInvalidArgument)
	}

	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)

	units := 0
	for scanner.Scan() {
		token := strings.TrimSpace(scanner.Text())
		if token == "" {
			continue
		}

		unit, ok := new(big.Int).SetString(token, 0)
		if !ok {
			return fmt.Errorf("malformed ciphertext token %q", token)
		}

		recovered := t.Transform(unit, exponent, modulus)
		if !recovered.IsUint64() || recovered.Uint64() > 0xff {
			return fmt.Errorf("recovered unit %s exceeds one byte; wrong exponent or modulus", recovered.String())
		}

		if err := bw.WriteByte(byte(recovered.Uint64())); err != nil {
			return fmt.Errorf("failed to write plaintext unit: %w", err)
		}
		units++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ciphertext token: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush plaintext: %w", err)
	}

	t.logger.Info("Decrypted ", units, " units")
	return nil
}
