package commands

import (
	"crypto/rand"
	"fmt"
	"os"

	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/infrastructure/cryptography"
	"rsa_forge_service/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// KeyCommandHandler encapsulates logic for handling key generation via CLI.
type KeyCommandHandler struct {
	keyGenerator rsaDomain.KeyGenerator
	keyFiler     rsaDomain.KeyFiler
	logger       logger.Logger
}

// NewKeyCommandHandler initializes a new KeyCommandHandler with logging, a key
// generator and a key filer.
func NewKeyCommandHandler() (*KeyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	tester, err := cryptography.NewSolovayStrassen(rand.Reader, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create primality tester: %w", err)
	}

	keyGenerator, err := cryptography.NewRSAKeyGenerator(rand.Reader, tester, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generator: %w", err)
	}

	keyFiler, err := cryptography.NewKeyFiler(cryptography.NewKeyCodec(), loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create key filer: %w", err)
	}

	return &KeyCommandHandler{
		keyGenerator: keyGenerator,
		keyFiler:     keyFiler,
		logger:       loggerInstance,
	}, nil
}

// GenerateKeysCmd generates an RSA key pair and persists the full key and both
// projections in a selected directory
func (commandHandler *KeyCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) {
	keyBitLen, err := cmd.Flags().GetUint("key-bit-len")
	if err != nil {
		commandHandler.logger.Error("invalid key-bit-len flag: %v", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag: %v", err)
		return
	}

	uniqueID := uuid.New()

	key, err := commandHandler.keyGenerator.GenerateKey(keyBitLen)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	publicKey, err := commandHandler.keyGenerator.DerivePublic(key)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	privateKey, err := commandHandler.keyGenerator.DerivePrivate(key)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	fullKeyFilePath := fmt.Sprintf("%s/%s-full-key.txt", keyDir, uniqueID.String())
	if err := commandHandler.keyFiler.SaveKeyToFile(key, fullKeyFilePath); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	publicKeyFilePath := fmt.Sprintf("%s/%s-public-key.txt", keyDir, uniqueID.String())
	if err := commandHandler.keyFiler.SavePublicKeyToFile(publicKey, publicKeyFilePath); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	privateKeyFilePath := fmt.Sprintf("%s/%s-private-key.txt", keyDir, uniqueID.String())
	if err := commandHandler.keyFiler.SavePrivateKeyToFile(privateKey, privateKeyFilePath); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
}

// DumpKeyCmd prints the labeled factors of a stored full key to stdout
func (commandHandler *KeyCommandHandler) DumpKeyCmd(cmd *cobra.Command, _ []string) {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		commandHandler.logger.Error("invalid key-file flag: %v", err)
		return
	}

	key, err := commandHandler.keyFiler.ReadKeyFromFile(keyFile)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if err := commandHandler.keyFiler.DumpKey(os.Stdout, key); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
}

// InitKeyCommands registers key-related commands
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key command handler %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair",
		Run:   handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().UintP("key-bit-len", "", 2048, "Bit length of the RSA modulus (must be even)")
	generateKeysCmd.Flags().StringP("key-dir", "", "", "Directory to store the generated keys")
	rootCmd.AddCommand(generateKeysCmd)

	var dumpKeyCmd = &cobra.Command{
		Use:   "dump-key",
		Short: "Print the factors of a stored full key",
		Run:   handler.DumpKeyCmd,
	}
	dumpKeyCmd.Flags().StringP("key-file", "", "", "Path to a stored full key file")
	rootCmd.AddCommand(dumpKeyCmd)

	return nil
}
