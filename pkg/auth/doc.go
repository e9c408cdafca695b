// Package auth implements the account authentication core: user records
// and their public projection, password and OTP hashing, one-time passcode
// generation, and the service orchestrating signup, OTP-gated login, email
// verification and request-time authorization.
//
// A user moves through three states: unregistered, pending verification
// (created, inactive, holding an outstanding OTP) and active (first OTP
// verified). Login never demotes an active user; it always issues a fresh
// OTP, so every login is gated on email possession. The only path that
// produces a session token is Verify.
//
// Storage is abstracted behind UserStorage; the MongoDB implementation
// lives in modules/user.
package auth
