package api

import (
	"context"                     // Transactional signup
	"net/http"                    // HTTP status codes
	"otp_market/internal/domain"  // Importing domain models
	"otp_market/internal/service" // Activity logging
	"otp_market/internal/store"   // Store handles
	"otp_market/internal/utils"   // Utility functions
	"strings"                     // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Request and Response structs
type SignupRequest struct {
	FullName string `json:"full_name" binding:"required"`       // Display name must be provided
	Email    string `json:"email" binding:"required,email"`     // Valid email must be provided
	Phone    string `json:"phone"`                              // Contact phone, optional
	Password string `json:"password" binding:"required,min=8"`  // Password of at least 8 characters
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // Session token
	Role  string `json:"role"`  // Account role, lets the UI pick its view
}

// SignupHandler registers an account and its zeroed wallet in one transaction,
// so every authenticated identity has both records before any workflow call.
func SignupHandler(accounts *store.AccountStore, wallets *store.WalletStore, txm *store.TxManager, activity *service.ActivityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Hash the password and create the account
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		acc := &domain.Account{
			Email:       strings.ToLower(req.Email), // Lowercase email to ensure uniqueness
			Password:    string(hash),               // Hashed password
			FullName:    req.FullName,               // Display name
			Phone:       req.Phone,                  // Contact phone
			LastLoginIP: c.ClientIP(),               // Origin address
		}
		// Account and wallet are created together or not at all
		err = txm.WithTransaction(c.Request.Context(), func(txCtx context.Context) error {
			if err := accounts.Create(txCtx, acc); err != nil {
				return err
			}
			// Zeroed wallet for the new account
			return wallets.Create(txCtx, &domain.Wallet{UserID: acc.ID, Balance: 0})
		})
		if err != nil {
			// Creation fails on duplicate email or store trouble
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Best-effort audit
		activity.Record(c.Request.Context(), acc.ID, domain.ActivitySignup, "New user registered", requestMeta(c))
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
	}
}

// LoginHandler authenticates an account and returns a session token
func LoginHandler(accounts *store.AccountStore, activity *service.ActivityLogger, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Fetch account from the store
		acc, err := accounts.GetByEmail(c.Request.Context(), strings.ToLower(req.Email))
		if err != nil {
			// If account not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Disabled accounts cannot open sessions
		if !acc.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is disabled"})
			return
		}
		// Generate session token
		token, err := utils.GenerateJWT(acc.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Refresh last-login timestamp and origin address, best effort
		_ = accounts.TouchLogin(c.Request.Context(), acc.ID, c.ClientIP())
		// Best-effort audit
		activity.Record(c.Request.Context(), acc.ID, domain.ActivityLogin, "User logged in", requestMeta(c))
		// Return the token and role; the UI decides where to route
		c.JSON(http.StatusOK, AuthResponse{Token: token, Role: acc.Role})
	}
}
