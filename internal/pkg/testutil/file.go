package testutil

import (
	"fmt"
	"os"
)

// CreateTestFile creates a test file with the given content.
func CreateTestFile(fileName string, content []byte) error {
	if err := os.WriteFile(fileName, content, 0600); err != nil {
		return fmt.Errorf("failed to create test file: %w", err)
	}
	return nil
}
