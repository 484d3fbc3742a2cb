package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Profile selects one of the two supported bootstrap configurations.
type Profile string

const (
	// ProfileStandard listens on 5000 by default and serves the root liveness route.
	ProfileStandard Profile = "standard"

	// ProfileClassic listens on 8080 by default and mounts only the route modules.
	ProfileClassic Profile = "classic"
)

const (
	// DefaultProfile is used when no profile is configured.
	DefaultProfile = ProfileStandard

	// DefaultMongoURI is the local document store used when MONGO_URI is unset.
	DefaultMongoURI = "mongodb://localhost:27017/dinedb"

	// DefaultConnectTimeout bounds server selection for the initial connection.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultBodyLimit is the maximum accepted request body size in bytes.
	DefaultBodyLimit = 100 * 1024

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP server.
	DefaultShutdownTimeout = 10 * time.Second
)

// DefaultPort returns the listen port for a profile when PORT is unset.
func (p Profile) DefaultPort() string {
	if p == ProfileClassic {
		return "8080"
	}
	return "5000"
}

// ServesRoot reports whether the profile registers the GET / liveness route.
func (p Profile) ServesRoot() bool {
	return p != ProfileClassic
}

// Config holds everything the bootstrap needs to start the service.
type Config struct {
	Profile         Profile       `validate:"required,oneof=standard classic"`
	Port            string        `validate:"required,listenport"`
	MongoURI        string        `validate:"required,mongouri"`
	LogLevel        string        `validate:"omitempty,oneof=debug info warn error"`
	LogFormat       string        `validate:"omitempty,oneof=json text"`
	ConnectTimeout  time.Duration `validate:"gt=0"`
	BodyLimit       int64         `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// New returns a Config for the given profile with every other field at its default.
func New(profile Profile) Config {
	if profile == "" {
		profile = DefaultProfile
	}
	return Config{
		Profile:         profile,
		Port:            profile.DefaultPort(),
		MongoURI:        DefaultMongoURI,
		LogLevel:        "info",
		LogFormat:       "json",
		ConnectTimeout:  DefaultConnectTimeout,
		BodyLimit:       DefaultBodyLimit,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "listenport", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		return err == nil && n > 0 && n <= 65535
	})
	mustRegister(v, "mongouri", func(fl validator.FieldLevel) bool {
		return IsMongoURI(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// IsMongoURI reports whether uri is a connection string the MongoDB driver accepts.
// mongodb+srv URIs are resolved through DNS as part of the check.
func IsMongoURI(uri string) bool {
	_, err := connstring.ParseAndValidate(uri)
	return err == nil
}

// Validate checks the configuration and returns a descriptive error for the first bad field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
