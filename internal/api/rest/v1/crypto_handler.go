package v1

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"rsa_forge_service/internal/domain/keys"
	rsaDomain "rsa_forge_service/internal/domain/rsa"

	"github.com/gin-gonic/gin"
)

// CryptoHandler defines the interface for handling encryption and decryption
// with stored keys
type CryptoHandler interface {
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

// cryptoHandler struct holds the services
type cryptoHandler struct {
	keyDownloadService keys.KeyDownloadService
	keyMetadataService keys.KeyMetadataService
	keyCodec           rsaDomain.KeyCodec
	transformEngine    rsaDomain.TransformEngine
}

// NewCryptoHandler creates a new CryptoHandler
func NewCryptoHandler(keyDownloadService keys.KeyDownloadService, keyMetadataService keys.KeyMetadataService, keyCodec rsaDomain.KeyCodec, transformEngine rsaDomain.TransformEngine) CryptoHandler {
	return &cryptoHandler{
		keyDownloadService: keyDownloadService,
		keyMetadataService: keyMetadataService,
		keyCodec:           keyCodec,
		transformEngine:    transformEngine,
	}
}

// Encrypt handles the POST request to encrypt data with a stored key
// @Summary Encrypt data with a stored key
// @Description Encrypt base64 encoded data with the public projection of a stored key. The ciphertext is returned in the line oriented hex token format.
// @Tags Crypto
// @Accept json
// @Produce json
// @Param requestBody body EncryptRequest true "Encryption Parameters"
// @Success 200 {object} EncryptResponse
// @Failure 400 {object} ErrorResponse
// @Router /crypto/encrypt [post]
func (handler *cryptoHandler) Encrypt(ctx *gin.Context) {

	var request EncryptRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid encryption data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	data, err := base64.StdEncoding.DecodeString(request.Data)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid base64 data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	exponent, modulus, err := handler.encryptionExponent(ctx, request.KeyID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = err.Error()
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var ciphertext bytes.Buffer
	if err := handler.transformEngine.EncryptStream(bytes.NewReader(data), &ciphertext, exponent, modulus); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("encryption failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, EncryptResponse{
		KeyID:      request.KeyID,
		Ciphertext: ciphertext.String(),
	})
}

// Decrypt handles the POST request to decrypt a ciphertext with a stored key
// @Summary Decrypt a ciphertext with a stored key
// @Description Decrypt a ciphertext in the line oriented hex token format with the private projection of a stored key. The recovered data is returned base64 encoded.
// @Tags Crypto
// @Accept json
// @Produce json
// @Param requestBody body DecryptRequest true "Decryption Parameters"
// @Success 200 {object} DecryptResponse
// @Failure 400 {object} ErrorResponse
// @Router /crypto/decrypt [post]
func (handler *cryptoHandler) Decrypt(ctx *gin.Context) {

	var request DecryptRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid decryption data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	exponent, modulus, err := handler.decryptionExponent(ctx, request.KeyID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = err.Error()
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	var data bytes.Buffer
	if err := handler.transformEngine.DecryptStream(strings.NewReader(request.Ciphertext), &data, exponent, modulus); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("decryption failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, DecryptResponse{
		KeyID: request.KeyID,
		Data:  base64.StdEncoding.EncodeToString(data.Bytes()),
	})
}

// encryptionExponent resolves the encryption exponent and modulus of a stored
// key. Encryption requires the public projection or a full key.
func (handler *cryptoHandler) encryptionExponent(ctx *gin.Context, keyID string) (*big.Int, *big.Int, error) {
	keyMeta, material, err := handler.fetchKey(ctx, keyID)
	if err != nil {
		return nil, nil, err
	}

	switch keyMeta.Type {
	case rsaDomain.KeyTypePublic:
		publicKey, err := handler.keyCodec.DecodePublicKey(material)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode public key %s: %w", keyID, err)
		}
		return publicKey.D, publicKey.N, nil
	case rsaDomain.KeyTypeFull:
		key, err := handler.keyCodec.DecodeKey(material)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode key %s: %w", keyID, err)
		}
		return key.D, key.N, nil
	default:
		return nil, nil, fmt.Errorf("key type %s of key %s cannot encrypt", keyMeta.Type, keyID)
	}
}

// decryptionExponent resolves the decryption exponent and modulus of a stored
// key. Decryption requires the private projection or a full key.
func (handler *cryptoHandler) decryptionExponent(ctx *gin.Context, keyID string) (*big.Int, *big.Int, error) {
	keyMeta, material, err := handler.fetchKey(ctx, keyID)
	if err != nil {
		return nil, nil, err
	}

	switch keyMeta.Type {
	case rsaDomain.KeyTypePrivate:
		privateKey, err := handler.keyCodec.DecodePrivateKey(material)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode private key %s: %w", keyID, err)
		}
		return privateKey.E, privateKey.N, nil
	case rsaDomain.KeyTypeFull:
		key, err := handler.keyCodec.DecodeKey(material)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode key %s: %w", keyID, err)
		}
		return key.E, key.N, nil
	default:
		return nil, nil, fmt.Errorf("key type %s of key %s cannot decrypt", keyMeta.Type, keyID)
	}
}

func (handler *cryptoHandler) fetchKey(ctx *gin.Context, keyID string) (*keys.KeyMeta, []byte, error) {
	keyMeta, err := handler.keyMetadataService.GetByID(ctx, keyID)
	if err != nil {
		return nil, nil, fmt.Errorf("key with id %s not found", keyID)
	}

	material, err := handler.keyDownloadService.DownloadByID(ctx, keyID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not download key with id %s: %w", keyID, err)
	}

	return keyMeta, material, nil
}
