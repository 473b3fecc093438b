package service

import (
	"github.com/haatos/simple-lms/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var testHasher = security.NewBcryptHasher(bcrypt.MinCost)

const testUserPassword = "testpassword"

func mustHash(password string) string {
	hash, err := testHasher.Hash(password)
	if err != nil {
		panic(err)
	}
	return hash
}
