package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo records collection is not reachable")
	ErrQueryFailed            = errors.New("mongo entity store query failed")
)
