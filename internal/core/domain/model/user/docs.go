// Package user provides the User aggregate: account identity, credentials,
// role and the bounded balance that pays for shipping.
//
// Key business rules:
//   - Usernames are 1 to 10 characters and never change
//   - Registration always produces a Customer; the single Administrator is
//     created at startup under AdministratorUsername
//   - Balance stays within [0, MaxBalance]; a single adjustment may not
//     exceed MaxBalance in magnitude
package user
