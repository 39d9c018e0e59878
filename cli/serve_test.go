package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMetricsDB(t *testing.T) {
	assert.Nil(t, metricsDB(nil))

	// no connection pool behind the handle
	assert.Nil(t, metricsDB(&gorm.DB{Config: &gorm.Config{}}))
}

func TestCreateUploadDirectories(t *testing.T) {
	root := t.TempDir()
	createUploadDirectories(root)

	for _, dir := range uploadFolders {
		info, err := os.Stat(filepath.Join(root, dir))
		if assert.NoError(t, err) {
			assert.True(t, info.IsDir())
		}
	}
}
