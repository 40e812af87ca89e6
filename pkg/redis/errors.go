package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis lock backend is not reachable")
	ErrLockNotHeld                  = errors.New("redis lock expired or taken over before release")
)
