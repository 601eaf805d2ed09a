package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"marketdash/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPortfolioItem creates a holding for the given user. Quantity is in
// shares and price in cents.
func CreateTestPortfolioItem(t *testing.T, db *gorm.DB, userID uint, symbol string, quantity, priceCents int64) *models.PortfolioItem {
	t.Helper()

	item := &models.PortfolioItem{
		UserID:        userID,
		Symbol:        symbol,
		Name:          fmt.Sprintf("Test Holding %d", nextID()),
		Quantity:      quantity,
		PurchasePrice: priceCents,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test portfolio item: %v", err)
	}
	return item
}
