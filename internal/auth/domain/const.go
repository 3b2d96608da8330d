// Package domain defines the session models: refresh tokens held in the ledger and
// the access/refresh token pair handed to clients.
package domain

// TokenTypeBearer is the token_type returned with every issued session.
const TokenTypeBearer = "bearer"
