package v1

import (
	"rsa_forge_service/internal/domain/keys"
	rsaDomain "rsa_forge_service/internal/domain/rsa"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	keyGenerationService keys.KeyGenerationService,
	keyDownloadService keys.KeyDownloadService,
	keyMetadataService keys.KeyMetadataService,
	keyCodec rsaDomain.KeyCodec,
	transformEngine rsaDomain.TransformEngine) {

	v1 := r.Group(BasePath) // lookup in version file

	// Keys Routes
	keyHandler := NewKeyHandler(keyGenerationService, keyDownloadService, keyMetadataService)
	v1.POST("/keys", keyHandler.GenerateKeys)
	v1.GET("/keys", keyHandler.ListMetadata)
	v1.GET("/keys/:id", keyHandler.GetMetadataByID)
	v1.GET("/keys/:id/file", keyHandler.DownloadByID)
	v1.DELETE("/keys/:id", keyHandler.DeleteByID)

	// Crypto Routes
	cryptoHandler := NewCryptoHandler(keyDownloadService, keyMetadataService, keyCodec, transformEngine)
	v1.POST("/crypto/encrypt", cryptoHandler.Encrypt)
	v1.POST("/crypto/decrypt", cryptoHandler.Decrypt)
}
