package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemhub/internal/config"
	"itemhub/internal/domain"
	"itemhub/internal/repository/gormstore"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "seed")
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	dbPath := filepath.Join(dir, "seed.db")
	t.Setenv("ITEMHUB_DATABASE_PATH", dbPath)
	t.Setenv("ITEMHUB_AUTH_ACCESSSECRET", "access")
	t.Setenv("ITEMHUB_AUTH_REFRESHSECRET", "refresh")
	t.Setenv("ITEMHUB_BOOTSTRAP_ADMINUSERNAME", "root")
	t.Setenv("ITEMHUB_BOOTSTRAP_ADMINPASSWORD", "root-password")
	t.Setenv("ITEMHUB_LOG_LEVEL", "error")

	root := newRootCmd()
	root.SetArgs([]string{"seed"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	db, err := gormstore.Open(gormstore.Config{Driver: gormstore.DriverSQLite, Path: dbPath}, nil)
	require.NoError(t, err)
	defer gormstore.Close(db)

	admin, err := gormstore.NewUserRepository(db).GetByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, domain.GroupAdministrator, admin.GroupName())
}

func TestSeedCommand_RejectsMissingSecrets(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ITEMHUB_AUTH_ACCESSSECRET", "")
	t.Setenv("ITEMHUB_AUTH_REFRESHSECRET", "")

	root := newRootCmd()
	root.SetArgs([]string{"seed"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secrets")
}

func TestNewLogger(t *testing.T) {
	var cfg config.Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger, err := newLogger(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "loud"
	_, err = newLogger(cfg)
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
