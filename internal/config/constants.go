package config

const (
	DefaultListenAddr   = "0.0.0.0"
	DefaultPort         = 8080
	DefaultRoot         = "./public"
	DefaultCORSOrigin   = "*"
	DefaultReadTimeout  = 30  // seconds
	DefaultWriteTimeout = 300 // seconds
	DefaultLogLevel     = "info"
)
