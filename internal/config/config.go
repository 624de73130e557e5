// Package config reads the service settings from defaults, an optional
// JSON file, command-line flags and the environment, in increasing order
// of precedence. A dotenv file is loaded into the environment first.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"

	"github.com/atinyakov/go-sentiment-service/internal/classifier"
)

const (
	defaultAddress   = "0.0.0.0:5000"
	DefaultModelName = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	defaultTimeout   = 30 * time.Second
	defaultEnvFile   = ".env"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address is the HTTP listen address (ip:port).
	Address string `json:"server_address"`

	// GRPCAddress enables the gRPC server when set.
	GRPCAddress string `json:"grpc_address"`

	LogLevel string `json:"log_level"`

	// Classifier selects the backend: vader, hugot, remote or openai.
	Classifier string `json:"classifier"`

	// ModelName is reported in response metadata and, for the openai
	// backend, names the chat model when it is not the default.
	ModelName string `json:"model_name"`

	// ModelPath points at a local ONNX model directory for hugot.
	ModelPath string `json:"model_path"`

	// ClassifierURL is the inference endpoint of the remote backend or the
	// base URL of the openai backend.
	ClassifierURL string `json:"classifier_url"`

	// ClassifierToken authenticates against remote or openai backends. It
	// is only read from the environment.
	ClassifierToken string `json:"-"`

	ClassifierTimeout time.Duration `json:"-"`

	EnablePprof bool `json:"enable_pprof"`

	// EnableHTTPS serves TLS on :443 with autocert certificates for TLSHosts.
	EnableHTTPS bool     `json:"enable_https"`
	TLSHosts    []string `json:"tls_hosts"`

	// Config is the path of the JSON config file.
	Config string `json:"-"`
}

// fileConfig mirrors Options with pointers so that absent keys keep
// their defaults.
type fileConfig struct {
	Address           *string  `json:"server_address"`
	GRPCAddress       *string  `json:"grpc_address"`
	LogLevel          *string  `json:"log_level"`
	Classifier        *string  `json:"classifier"`
	ModelName         *string  `json:"model_name"`
	ModelPath         *string  `json:"model_path"`
	ClassifierURL     *string  `json:"classifier_url"`
	ClassifierTimeout *string  `json:"classifier_timeout"`
	EnablePprof       *bool    `json:"enable_pprof"`
	EnableHTTPS       *bool    `json:"enable_https"`
	TLSHosts          []string `json:"tls_hosts"`
}

func defaults() *Options {
	return &Options{
		Address:           defaultAddress,
		LogLevel:          "info",
		Classifier:        classifier.BackendVader,
		ModelName:         DefaultModelName,
		ClassifierTimeout: defaultTimeout,
	}
}

// Parse reads the configuration for the running process.
func Parse() (*Options, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs reads the configuration from args and the environment.
func ParseArgs(args []string) (*Options, error) {
	envFile := defaultEnvFile
	if v, ok := os.LookupEnv("ENV_FILE"); ok {
		envFile = v
	}
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	options := defaults()

	flags := flag.NewFlagSet("sentiment", flag.ContinueOnError)
	configPath := flags.String("c", "", "path to JSON config file")
	address := flags.String("a", options.Address, "run on ip:port server")
	grpcAddress := flags.String("g", options.GRPCAddress, "gRPC listen address, empty disables gRPC")
	logLevel := flags.String("l", options.LogLevel, "log level")
	backend := flags.String("m", options.Classifier, "classifier backend: vader, hugot, remote or openai")
	modelName := flags.String("n", options.ModelName, "model identifier")
	modelPath := flags.String("model-path", options.ModelPath, "local ONNX model directory for hugot")
	classifierURL := flags.String("u", options.ClassifierURL, "remote classifier endpoint")
	timeout := flags.Duration("t", options.ClassifierTimeout, "classifier call timeout")
	pprof := flags.Bool("p", false, "enable pprof")
	https := flags.Bool("s", false, "enable https")
	hosts := flags.String("hosts", "", "comma separated hosts for autocert")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	options.Config = *configPath
	if v, ok := os.LookupEnv("CONFIG"); ok && v != "" {
		options.Config = v
	}
	if options.Config != "" {
		if err := options.loadFile(options.Config); err != nil {
			return nil, err
		}
	}

	// flags set explicitly win over the file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			options.Address = *address
		case "g":
			options.GRPCAddress = *grpcAddress
		case "l":
			options.LogLevel = *logLevel
		case "m":
			options.Classifier = *backend
		case "n":
			options.ModelName = *modelName
		case "model-path":
			options.ModelPath = *modelPath
		case "u":
			options.ClassifierURL = *classifierURL
		case "t":
			options.ClassifierTimeout = *timeout
		case "p":
			options.EnablePprof = *pprof
		case "s":
			options.EnableHTTPS = *https
		case "hosts":
			options.TLSHosts = splitList(*hosts)
		}
	})

	if err := options.applyEnv(); err != nil {
		return nil, err
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func (o *Options) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&o.Address, fc.Address)
	setString(&o.GRPCAddress, fc.GRPCAddress)
	setString(&o.LogLevel, fc.LogLevel)
	setString(&o.Classifier, fc.Classifier)
	setString(&o.ModelName, fc.ModelName)
	setString(&o.ModelPath, fc.ModelPath)
	setString(&o.ClassifierURL, fc.ClassifierURL)
	if fc.ClassifierTimeout != nil {
		d, err := time.ParseDuration(*fc.ClassifierTimeout)
		if err != nil {
			return fmt.Errorf("parse classifier_timeout: %w", err)
		}
		o.ClassifierTimeout = d
	}
	if fc.EnablePprof != nil {
		o.EnablePprof = *fc.EnablePprof
	}
	if fc.EnableHTTPS != nil {
		o.EnableHTTPS = *fc.EnableHTTPS
	}
	if fc.TLSHosts != nil {
		o.TLSHosts = fc.TLSHosts
	}
	return nil
}

func (o *Options) applyEnv() error {
	strs := map[string]*string{
		"SERVER_ADDRESS":   &o.Address,
		"GRPC_ADDRESS":     &o.GRPCAddress,
		"LOG_LEVEL":        &o.LogLevel,
		"CLASSIFIER":       &o.Classifier,
		"MODEL_NAME":       &o.ModelName,
		"MODEL_PATH":       &o.ModelPath,
		"CLASSIFIER_URL":   &o.ClassifierURL,
		"CLASSIFIER_TOKEN": &o.ClassifierToken,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("CLASSIFIER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CLASSIFIER_TIMEOUT: %w", err)
		}
		o.ClassifierTimeout = d
	}

	bools := map[string]*bool{
		"ENABLE_PPROF": &o.EnablePprof,
		"ENABLE_HTTPS": &o.EnableHTTPS,
	}
	for key, dst := range bools {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v := os.Getenv("TLS_HOSTS"); v != "" {
		o.TLSHosts = splitList(v)
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (o *Options) Validate() error {
	o.Classifier = strings.ToLower(strings.TrimSpace(o.Classifier))

	switch o.Classifier {
	case classifier.BackendVader:
	case classifier.BackendHugot:
		if o.ModelPath == "" {
			return errors.New("hugot classifier requires a model path (-model-path or MODEL_PATH)")
		}
	case classifier.BackendRemote:
		if o.ClassifierURL == "" {
			return errors.New("remote classifier requires an endpoint (-u or CLASSIFIER_URL)")
		}
	case classifier.BackendOpenAI:
		if o.ClassifierToken == "" {
			return errors.New("openai classifier requires CLASSIFIER_TOKEN")
		}
	default:
		return fmt.Errorf("unknown classifier backend %q", o.Classifier)
	}

	if o.ClassifierTimeout <= 0 {
		return errors.New("classifier timeout must be positive")
	}
	if o.EnableHTTPS && len(o.TLSHosts) == 0 {
		return errors.New("https requires at least one host (-hosts or TLS_HOSTS)")
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
