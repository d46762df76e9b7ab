package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/glbind/errors"
	"github.com/teranos/glbind/logger"
)

// backupCount is how many rotated copies Save keeps (.back1 .. .back3).
const backupCount = 3

// createBackup rotates .back1 -> .back2 -> .back3 and copies the current
// file to .back1. A missing file needs no backup.
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	oldest := backupPath(configPath, backupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old config backup",
			logger.FieldPath, oldest,
			logger.FieldError, err)
	}

	for i := backupCount - 1; i >= 1; i-- {
		from := backupPath(configPath, i)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, backupPath(configPath, i+1)); err != nil {
				return errors.Wrapf(err, "failed to rotate %s", from)
			}
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backupPath(configPath, 1), content, 0644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

func backupPath(configPath string, n int) string {
	return configPath + ".back" + strconv.Itoa(n)
}

// isBackupFile reports whether path is one of Save's rotated backups.
func isBackupFile(path string) bool {
	for i := 1; i <= backupCount; i++ {
		if strings.HasSuffix(path, ".back"+strconv.Itoa(i)) {
			return true
		}
	}
	return false
}

// Marshal renders cfg as glbind.toml content.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// Save writes cfg to path, keeping rotated backups of the previous content.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
