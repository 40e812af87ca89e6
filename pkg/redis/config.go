package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the URL of the database. It should be in the format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of retry attempts to connect to the database.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the interval between retry attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout is the timeout for connecting to the database.

	LockTTL       time.Duration `env:"REDIS_LOCK_TTL" envDefault:"30s"`          // LockTTL bounds how long a crashed holder can block others.
	LockRetryWait time.Duration `env:"REDIS_LOCK_RETRY_WAIT" envDefault:"50ms"` // LockRetryWait is the polling interval while a lock is held elsewhere.
	LockPrefix    string        `env:"REDIS_LOCK_PREFIX" envDefault:"lock:"`    // LockPrefix namespaces lock keys.
}
