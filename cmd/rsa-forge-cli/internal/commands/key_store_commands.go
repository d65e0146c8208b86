package commands

import (
	"context"
	"fmt"

	"rsa_forge_service/internal/app"
	"rsa_forge_service/internal/domain/keys"
	"rsa_forge_service/internal/infrastructure/persistence"
	"rsa_forge_service/internal/infrastructure/persistence/models"
	"rsa_forge_service/internal/infrastructure/vault"
	"rsa_forge_service/internal/pkg/config"
	"rsa_forge_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// KeyStoreCommandHandler encapsulates logic for managing the key metadata
// store via CLI. The store is opened per invocation from the db-path and
// vault-dir flags.
type KeyStoreCommandHandler struct {
	logger logger.Logger
}

// NewKeyStoreCommandHandler initializes a new KeyStoreCommandHandler.
func NewKeyStoreCommandHandler() (*KeyStoreCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &KeyStoreCommandHandler{
		logger: loggerInstance,
	}, nil
}

// openMetadataService builds a metadata service from the db-path and
// vault-dir flags of the invoked command.
func (commandHandler *KeyStoreCommandHandler) openMetadataService(cmd *cobra.Command) (keys.KeyMetadataService, error) {
	dbPath, err := cmd.Flags().GetString("db-path")
	if err != nil {
		return nil, fmt.Errorf("invalid db-path flag: %w", err)
	}
	vaultDir, err := cmd.Flags().GetString("vault-dir")
	if err != nil {
		return nil, fmt.Errorf("invalid vault-dir flag: %w", err)
	}

	db, err := persistence.NewDBConnection(config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  dbPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open key store: %w", err)
	}

	if err := db.AutoMigrate(&models.KeyMetaModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	keyRepo, err := persistence.NewGormKeyRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key repository: %w", err)
	}

	keyVault, err := vault.NewFileVault(vaultDir, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file vault: %w", err)
	}

	return app.NewKeyMetadataService(keyVault, keyRepo, commandHandler.logger)
}

// ListKeysCmd lists the metadata of all stored keys
func (commandHandler *KeyStoreCommandHandler) ListKeysCmd(cmd *cobra.Command, _ []string) {
	metadataService, err := commandHandler.openMetadataService(cmd)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	query := keys.NewKeyMetaQuery()
	if keyType, err := cmd.Flags().GetString("type"); err == nil && keyType != "" {
		query.Type = keyType
	}

	keyMetas, err := metadataService.List(context.Background(), query)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	for _, keyMeta := range keyMetas {
		commandHandler.logger.Info("Key ", keyMeta.ID, " pair ", keyMeta.KeyPairID, " type ", keyMeta.Type, " bits ", keyMeta.KeyLen)
	}
	commandHandler.logger.Info("Listed ", len(keyMetas), " keys")
}

// GetKeyCmd prints the metadata of one stored key
func (commandHandler *KeyStoreCommandHandler) GetKeyCmd(cmd *cobra.Command, _ []string) {
	metadataService, err := commandHandler.openMetadataService(cmd)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	keyID, err := cmd.Flags().GetString("key-id")
	if err != nil {
		commandHandler.logger.Error("invalid key-id flag: %v", err)
		return
	}

	keyMeta, err := metadataService.GetByID(context.Background(), keyID)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Key ", keyMeta.ID, " pair ", keyMeta.KeyPairID, " type ", keyMeta.Type, " bits ", keyMeta.KeyLen, " created ", keyMeta.DateTimeCreated)
}

// DeleteKeyCmd deletes a stored key's material and metadata
func (commandHandler *KeyStoreCommandHandler) DeleteKeyCmd(cmd *cobra.Command, _ []string) {
	metadataService, err := commandHandler.openMetadataService(cmd)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	keyID, err := cmd.Flags().GetString("key-id")
	if err != nil {
		commandHandler.logger.Error("invalid key-id flag: %v", err)
		return
	}

	if err := metadataService.DeleteByID(context.Background(), keyID); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Deleted key ", keyID)
}

func addKeyStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("db-path", "", "rsa_forge.db", "Path to the SQLite key metadata store")
	cmd.Flags().StringP("vault-dir", "", "./data/keys", "Directory holding stored key material")
}

// InitKeyStoreCommands registers key store management commands
func InitKeyStoreCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyStoreCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key store command handler %w", err)
	}

	var listKeysCmd = &cobra.Command{
		Use:   "list-keys",
		Short: "List metadata of stored keys",
		Run:   handler.ListKeysCmd,
	}
	addKeyStoreFlags(listKeysCmd)
	listKeysCmd.Flags().StringP("type", "", "", "Filter by key type (full, public, private)")
	rootCmd.AddCommand(listKeysCmd)

	var getKeyCmd = &cobra.Command{
		Use:   "get-key",
		Short: "Show metadata of one stored key",
		Run:   handler.GetKeyCmd,
	}
	addKeyStoreFlags(getKeyCmd)
	getKeyCmd.Flags().StringP("key-id", "", "", "ID of the stored key")
	rootCmd.AddCommand(getKeyCmd)

	var deleteKeyCmd = &cobra.Command{
		Use:   "delete-key",
		Short: "Delete a stored key's material and metadata",
		Run:   handler.DeleteKeyCmd,
	}
	addKeyStoreFlags(deleteKeyCmd)
	deleteKeyCmd.Flags().StringP("key-id", "", "", "ID of the stored key")
	rootCmd.AddCommand(deleteKeyCmd)

	return nil
}
