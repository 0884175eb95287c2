package domain

import "errors"

// Validation failures (HTTP 400).
var ErrInvalidEmail = errors.New("invalid email format")
var ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
var ErrUsernameTaken = errors.New("username is already taken")
var ErrEmailTaken = errors.New("email is already taken")
var ErrSelfFollow = errors.New("you cannot follow yourself")
var ErrEmptyPost = errors.New("post must have text or image")
var ErrEmptyComment = errors.New("comment must have text")
var ErrPasswordPair = errors.New("please provide both current password and new password")

// Bad credentials answer 400 with a message that never says whether the
// username exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth failures (HTTP 401).
var ErrNotOwner = errors.New("user not authorized")
var ErrSessionRevoked = errors.New("session revoked")

// Missing entities (HTTP 404).
var ErrUserNotFound = errors.New("user not found")
var ErrPostNotFound = errors.New("post not found")
var ErrNotificationNotFound = errors.New("notification not found")
