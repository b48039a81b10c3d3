package user

import (
	"log"
	"strings"

	"github.com/yagnamodi22/book-by-truf-backend/pkg/utils"
	"gorm.io/gorm"
)

type seedUser struct {
	email     string
	firstName string
	lastName  string
	role      string
	password  string
	phone     string
}

var defaultUsers = []seedUser{
	{"john@example.com", "John", "Doe", RoleUser, "User@123", "+919876543210"},
	{"jane@example.com", "Jane", "Smith", RoleOwner, "Owner@123", "+919876543211"},
	{"admin@example.com", "Admin", "User", RoleAdmin, "Admin@123", "+919876543212"},
}

// SeedDefaultUsers creates or repairs the default USER/OWNER/ADMIN accounts.
// It is idempotent: existing accounts only get touched when the role drifted
// or the password column does not hold a bcrypt hash.
func SeedDefaultUsers(db *gorm.DB) error {
	repo := NewUserRepository(db)

	for _, s := range defaultUsers {
		existing, err := repo.FindByEmail(s.email)
		if err != nil {
			return err
		}

		if existing == nil {
			hashed, err := utils.HashPassword(s.password)
			if err != nil {
				return err
			}
			u := &User{
				FirstName: s.firstName,
				LastName:  s.lastName,
				Email:     s.email,
				Password:  hashed,
				Phone:     s.phone,
				Role:      s.role,
			}
			if err := repo.Create(u); err != nil {
				return err
			}
			log.Printf("Created default %s user: %s", s.role, s.email)
			continue
		}

		updated := false
		if existing.Role != s.role {
			existing.Role = s.role
			updated = true
		}
		if !isBcryptHash(existing.Password) {
			hashed, err := utils.HashPassword(s.password)
			if err != nil {
				return err
			}
			existing.Password = hashed
			updated = true
		}
		if updated {
			if err := repo.Update(existing); err != nil {
				return err
			}
			log.Printf("Updated default user: %s", s.email)
		}
	}
	return nil
}

func isBcryptHash(p string) bool {
	return strings.HasPrefix(p, "$2a$") || strings.HasPrefix(p, "$2b$") || strings.HasPrefix(p, "$2y$")
}
