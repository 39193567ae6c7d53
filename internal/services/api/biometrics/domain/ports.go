package domain

import "context"

// ServicePort defines the biometrics contract used by the http layer and the probe
type ServicePort interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Enroll(ctx context.Context) ([]byte, error)
	Verify(ctx context.Context, stored string) (MatchResult, error)
	Identify(ctx context.Context, entries []Entry) (MatchResult, error)
	SelfTest(ctx context.Context) (SelfTest, error)
	Info(ctx context.Context) Info
}
