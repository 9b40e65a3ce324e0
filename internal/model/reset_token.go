package model

import "time"

// PasswordResetToken models an entry in the `password_reset_tokens`
// table.  A token is valid only while it is unused and unexpired;
// issuing a new token marks all prior unused tokens for the same user
// as used, so at most one token per user can ever redeem.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  Token     – opaque random hex string handed to the client.
//  ExpiresAt – expiration timestamp (one hour after issuance).
//  Used      – whether the token has been redeemed or invalidated.
//  CreatedAt – timestamp of creation.
type PasswordResetToken struct {
	ID        uint64
	UserID    uint64
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
