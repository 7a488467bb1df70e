package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env             string
	AppPort         string
	AppBaseURL      string
	DBDSN           string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	JWTExpiresMin   int
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
	UploadDir       string

	// Lifecycle policy knobs.
	GateEnforced         bool
	AutoRejectApplicants bool
	PaymentRequestCap    int
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	reqCap, _ := strconv.Atoi(get("PAYMENT_REQUEST_CAP", "5"))
	return Config{
		Env:             get("APP_ENV", "development"),
		AppPort:         get("APP_PORT", "8080"),
		AppBaseURL:      get("APP_BASE_URL", ""),
		DBDSN:           must("DB_DSN"),
		RedisAddr:       get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresMin:   expires,
		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),
		UploadDir:       get("UPLOAD_DIR", "./uploads"),

		GateEnforced:         get("GATE_ENFORCED", "false") == "true",
		AutoRejectApplicants: get("AUTO_REJECT_APPLICANTS", "false") == "true",
		PaymentRequestCap:    reqCap,
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
