package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// storedSession is the on-disk session state under the user's home.
type storedSession struct {
	BaseURL string `json:"base_url"`
	Token   string `json:"token"`
}

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".admctl", "session.json"), nil
}

func loadSession() (storedSession, error) {
	var sess storedSession
	path, err := sessionPath()
	if err != nil {
		return sess, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return sess, nil
	}
	if err != nil {
		return sess, err
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return storedSession{}, err
	}
	return sess, nil
}

func saveSession(sess storedSession) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func clearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
