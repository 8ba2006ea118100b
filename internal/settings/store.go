package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Store persists Settings to a single JSON file, the library's only durable
// state. A missing or malformed file silently yields the defaults; fields
// absent from the file keep their default values so older files stay
// loadable.
type Store struct {
	filePath string
	mu       sync.Mutex
	current  Settings
	logger   *zap.Logger
}

func NewStore(filePath string, logger *zap.Logger) *Store {
	s := &Store{
		filePath: filePath,
		current:  Default(),
		logger:   logger,
	}
	s.load()
	return s
}

// Current returns a copy of the persisted settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Save validates, persists, and installs the new settings wholesale.
func (s *Store) Save(next Settings) error {
	if err := next.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Create(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(next); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	s.current = next.Clone()
	return nil
}

// overlay mirrors Settings with pointer fields so that keys absent from the
// stored file can be told apart from zero values.
type overlay struct {
	Passcode              *string   `json:"passcode"`
	AdminEmails           *[]string `json:"admin_emails"`
	EmailServiceID        *string   `json:"email_service_id"`
	EmailTemplateIDAdmin  *string   `json:"email_template_id_admin"`
	EmailTemplateIDCustom *string   `json:"email_template_id_customer"`
	EmailPublicKey        *string   `json:"email_public_key"`
	IsLocked              *bool     `json:"is_locked"`
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read settings file, using defaults",
				zap.String("path", s.filePath), zap.Error(err))
		}
		return
	}

	var saved overlay
	if err := json.Unmarshal(raw, &saved); err != nil {
		s.logger.Warn("settings file is malformed, using defaults",
			zap.String("path", s.filePath), zap.Error(err))
		return
	}

	merged := Default()
	if saved.Passcode != nil {
		merged.Passcode = *saved.Passcode
	}
	if saved.AdminEmails != nil {
		merged.AdminEmails = *saved.AdminEmails
	}
	if saved.EmailServiceID != nil {
		merged.EmailServiceID = *saved.EmailServiceID
	}
	if saved.EmailTemplateIDAdmin != nil {
		merged.EmailTemplateIDAdmin = *saved.EmailTemplateIDAdmin
	}
	if saved.EmailTemplateIDCustom != nil {
		merged.EmailTemplateIDCustom = *saved.EmailTemplateIDCustom
	}
	if saved.EmailPublicKey != nil {
		merged.EmailPublicKey = *saved.EmailPublicKey
	}
	if saved.IsLocked != nil {
		merged.IsLocked = *saved.IsLocked
	}

	if err := merged.Validate(); err != nil {
		s.logger.Warn("stored settings violate invariants, using defaults",
			zap.String("path", s.filePath), zap.Error(err))
		return
	}

	s.current = merged
}
