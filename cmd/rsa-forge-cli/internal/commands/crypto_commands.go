package commands

import (
	"fmt"
	"os"
	"path/filepath"

	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/infrastructure/cryptography"
	"rsa_forge_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// CryptoCommandHandler encapsulates logic for encrypting and decrypting files
// via CLI.
type CryptoCommandHandler struct {
	keyFiler        rsaDomain.KeyFiler
	transformEngine rsaDomain.TransformEngine
	logger          logger.Logger
}

// NewCryptoCommandHandler initializes a new CryptoCommandHandler with logging,
// a key filer and a transform engine.
func NewCryptoCommandHandler() (*CryptoCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	keyFiler, err := cryptography.NewKeyFiler(cryptography.NewKeyCodec(), loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create key filer: %w", err)
	}

	transformEngine, err := cryptography.NewTransformEngine(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create transform engine: %w", err)
	}

	return &CryptoCommandHandler{
		keyFiler:        keyFiler,
		transformEngine: transformEngine,
		logger:          loggerInstance,
	}, nil
}

// EncryptCmd encrypts a file with a stored public key
func (commandHandler *CryptoCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag: %v", err)
		return
	}

	publicKey, err := commandHandler.keyFiler.ReadPublicKeyFromFile(publicKeyPath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	input, err := os.Open(filepath.Clean(inputFile))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
	defer func() {
		if err := input.Close(); err != nil {
			commandHandler.logger.Error("%v", err)
		}
	}()

	output, err := os.OpenFile(filepath.Clean(outputFile), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
	defer func() {
		if err := output.Close(); err != nil {
			commandHandler.logger.Error("%v", err)
		}
	}()

	if err := commandHandler.transformEngine.EncryptStream(input, output, publicKey.D, publicKey.N); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Encrypted data path ", outputFile)
}

// DecryptCmd decrypts a file with a stored private key
func (commandHandler *CryptoCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		commandHandler.logger.Error("invalid private-key flag: %v", err)
		return
	}

	privateKey, err := commandHandler.keyFiler.ReadPrivateKeyFromFile(privateKeyPath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	input, err := os.Open(filepath.Clean(inputFile))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
	defer func() {
		if err := input.Close(); err != nil {
			commandHandler.logger.Error("%v", err)
		}
	}()

	output, err := os.OpenFile(filepath.Clean(outputFile), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
	defer func() {
		if err := output.Close(); err != nil {
			commandHandler.logger.Error("%v", err)
		}
	}()

	if err := commandHandler.transformEngine.DecryptStream(input, output, privateKey.E, privateKey.N); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Decrypted data path ", outputFile)
}

// InitCryptoCommands registers encryption and decryption commands
func InitCryptoCommands(rootCmd *cobra.Command) error {
	handler, err := NewCryptoCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create crypto command handler %w", err)
	}

	var encryptFileCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file with a public key",
		Run:   handler.EncryptCmd,
	}
	encryptFileCmd.Flags().StringP("input-file", "", "", "Path to input file which needs to be encrypted")
	encryptFileCmd.Flags().StringP("output-file", "", "", "Path to encrypted output file")
	encryptFileCmd.Flags().StringP("public-key", "", "", "Path to a stored public key file")
	rootCmd.AddCommand(encryptFileCmd)

	var decryptFileCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file with a private key",
		Run:   handler.DecryptCmd,
	}
	decryptFileCmd.Flags().StringP("input-file", "", "", "Path to encrypted file")
	decryptFileCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file")
	decryptFileCmd.Flags().StringP("private-key", "", "", "Path to a stored private key file")
	rootCmd.AddCommand(decryptFileCmd)

	return nil
}
