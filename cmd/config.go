package cmd

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	RedisAddr          string
	RouteCacheTTL      string
	KafkaBrokers       string
	KafkaOffRouteTopic string
	SchedulerSpec      string
	PolicyFile         string
	TraceOutput        string
}
