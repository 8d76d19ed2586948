package auth

import "context"

// StaticCredentialChecker answers from a fixed table, identities not in it
// are authorized. Used in development and tests.
type StaticCredentialChecker struct {
	States map[string]CredentialState
	Err    error
}

func NewStaticCredentialChecker() *StaticCredentialChecker {
	return &StaticCredentialChecker{
		States: map[string]CredentialState{},
	}
}

func (c *StaticCredentialChecker) CredentialState(_ context.Context, userID string) (CredentialState, error) {
	if c.Err != nil {
		return "", c.Err
	}
	if state, ok := c.States[userID]; ok {
		return state, nil
	}
	return CredentialAuthorized, nil
}
