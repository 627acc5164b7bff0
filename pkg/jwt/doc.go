// Package jwt provides JSON Web Token utilities for the Cloud Notes API.
//
// The jwt package handles token generation, validation, and claims
// extraction for authentication. Tokens are compact HS256 JWTs signed
// with a single process-wide secret loaded at startup.
//
// # Token Generation
//
// Generate tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    Secret:     []byte("secret-key"),
//	    Issuer:     "cloudnotes",
//	    Expiration: time.Hour,
//	})
//
//	token, err := service.Sign(jwt.Claims{Subject: "42"})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid, tampered, or expired token
//	}
//	userID := claims.Subject
//
// # Claims
//
// Only registered JWT claims are carried:
//
//	type Claims struct {
//	    Issuer    string // Token issuer
//	    Subject   string // User ID (decimal string)
//	    ExpiresAt int64  // Expiry (unix seconds)
//	    NotBefore int64
//	    IssuedAt  int64
//	}
//
// There is no server-side token state: a token cannot be revoked before
// its expiry short of rotating the signing secret.
package jwt
