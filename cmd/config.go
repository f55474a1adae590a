package cmd

// Config carries the environment configuration of the dispatch service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AutoAssignIntervalSeconds is how often the scheduler pass starts;
	// AutoAssignTickTimeoutSeconds bounds how long one pass may run.
	AutoAssignIntervalSeconds    int
	AutoAssignTickTimeoutSeconds int
}
