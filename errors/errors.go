package errors

import "fmt"

var (
	ErrInvalidToken       = fmt.Errorf("invalid authentication token")
	ErrExpiredToken       = fmt.Errorf("authentication token expired")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrNotFound           = fmt.Errorf("not found")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrNotTeamMember      = fmt.Errorf("not a member of this team")
	ErrTagAlreadyExists   = fmt.Errorf("tag already exists in this team")
	ErrForbidden          = fmt.Errorf("operation not allowed")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)
