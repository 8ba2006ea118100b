package settings

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// MaxAdminEmails caps the admin notification recipient list.
const MaxAdminEmails = 10

var (
	ErrInvalidPasscode = errors.New("passcode must be empty or exactly 4 digits")
	ErrTooManyEmails   = fmt.Errorf("admin email list exceeds %d entries", MaxAdminEmails)

	passcodeRe = regexp.MustCompile(`^\d{4}$`)
)

// Settings is the admin-editable configuration. It is loaded once at
// startup and overwritten wholesale on every save; the dispatch sequencer
// works on a by-value snapshot so later edits never touch an in-flight run.
type Settings struct {
	Passcode              string   `json:"passcode"`
	AdminEmails           []string `json:"admin_emails"`
	EmailServiceID        string   `json:"email_service_id"`
	EmailTemplateIDAdmin  string   `json:"email_template_id_admin"`
	EmailTemplateIDCustom string   `json:"email_template_id_customer"`
	EmailPublicKey        string   `json:"email_public_key"`
	IsLocked              bool     `json:"is_locked"`
}

// Default is the configuration used before the admin ever saves: no gate,
// no recipients, credential editing locked.
func Default() Settings {
	return Settings{
		Passcode:    "",
		AdminEmails: []string{},
		IsLocked:    true,
	}
}

// Validate enforces the structural invariants. It does not check that the
// EmailJS fields are filled in; missing credentials just skip delivery.
func (s Settings) Validate() error {
	if s.Passcode != "" && !passcodeRe.MatchString(s.Passcode) {
		return ErrInvalidPasscode
	}
	if len(s.AdminEmails) > MaxAdminEmails {
		return ErrTooManyEmails
	}
	return nil
}

// HasGate reports whether opening the settings view requires the passcode
// challenge. An empty passcode means anyone may edit.
func (s Settings) HasGate() bool {
	return s.Passcode != ""
}

// CredentialsConfigured reports whether the delivery service can be called
// at all.
func (s Settings) CredentialsConfigured() bool {
	return s.EmailServiceID != "" && s.EmailPublicKey != ""
}

// AddEmail appends a recipient. Duplicates and additions beyond the cap are
// silent no-ops, matching the settings editor's behavior.
func (s *Settings) AddEmail(email string) {
	if email == "" || len(s.AdminEmails) >= MaxAdminEmails {
		return
	}
	if slices.Contains(s.AdminEmails, email) {
		return
	}
	s.AdminEmails = append(s.AdminEmails, email)
}

// RemoveEmail drops a recipient if present.
func (s *Settings) RemoveEmail(email string) {
	s.AdminEmails = slices.DeleteFunc(s.AdminEmails, func(e string) bool {
		return e == email
	})
}

// Clone returns a deep copy, used for dispatch snapshots.
func (s Settings) Clone() Settings {
	out := s
	out.AdminEmails = slices.Clone(s.AdminEmails)
	return out
}
