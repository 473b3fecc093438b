package service

import (
	"crypto/subtle"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/haatos/simple-lms/internal/security"
	"github.com/haatos/simple-lms/internal/settings"
	"golang.org/x/term"
)

// SuperAdminService checks the single configured super admin credential.
// The super admin is not a user record.
type SuperAdminService struct {
	username     string
	passwordHash string
	hasher       security.PasswordHasher
}

func NewSuperAdminService(
	username, passwordHash string,
	hasher security.PasswordHasher,
) *SuperAdminService {
	return &SuperAdminService{username, passwordHash, hasher}
}

func (s *SuperAdminService) Configured() bool {
	return s.username != "" && s.passwordHash != ""
}

func (s *SuperAdminService) Authenticate(username, password string) error {
	if err := requireFields("username", username, "password", password); err != nil {
		return err
	}
	if !s.Configured() {
		return ErrInvalidCredentials
	}
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordOK := s.hasher.Verify(password, s.passwordHash)
	if !usernameOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}

// InitializeSuperAdmin prompts for the super admin credential when none is
// configured and stdin is a terminal, and stores it in the dotenv file.
// Without a terminal the super admin stays disabled.
func InitializeSuperAdmin(s *settings.AppSettings, hasher security.PasswordHasher, dotenvPath string) {
	if s.SuperAdminUsername != "" && s.SuperAdminPasswordHash != "" {
		return
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Println("super admin is not configured, set LMS_SUPER_ADMIN_USERNAME and LMS_SUPER_ADMIN_PASSWORD_HASH")
		return
	}

	fmt.Println("Create the super admin")
	fmt.Print("Username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		log.Fatal(err)
	}
	username = strings.TrimSpace(username)
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatal(err)
	}
	if username == "" || len(passwordBytes) == 0 {
		log.Fatal("super admin username and password are required")
	}

	hash, err := hasher.Hash(string(passwordBytes))
	if err != nil {
		log.Fatal(err)
	}
	security.WriteToDotenv(dotenvPath, "LMS_SUPER_ADMIN_USERNAME", username)
	security.WriteToDotenv(dotenvPath, "LMS_SUPER_ADMIN_PASSWORD_HASH", hash)
	s.SuperAdminUsername = username
	s.SuperAdminPasswordHash = hash
}
