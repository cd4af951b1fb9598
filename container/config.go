package container

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigHTTPServer struct for HTTP ConfigTransport configuration
type ConfigHTTPServer struct {
	Port int `yaml:"port"`
}

// ConfigTransport is a configuration for the transport layer: HTTP or anything
type ConfigTransport struct {
	HTTP ConfigHTTPServer `yaml:"http"`
}

type ConfigGoSqlDb struct {
	Debug bool   `yaml:"debug"`
	DSN   string `yaml:"dsn"` // Data Source Name
}

type ConfigDatabaseResource struct {
	Disable bool   `yaml:"disable"`
	Driver  string `yaml:"driver"` // postgres only for now

	// per driver configuration
	Postgres ConfigGoSqlDb `yaml:"postgres"`
}

// ConfigDatabaseResources redefine config
type ConfigDatabaseResources map[string]ConfigDatabaseResource

// ConfigMailer is the SMTP account used for every outgoing email.
type ConfigMailer struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"senderName"`
	SenderAddr string `yaml:"senderAddr"`
}

// ConfigRenderer points to the renderer asset directory (blank template,
// fonts) and bounds the headless browser.
type ConfigRenderer struct {
	AssetDir       string `yaml:"assetDir"`
	RichTimeoutSec int    `yaml:"richTimeoutSec"`

	// DisableRich skips the headless-browser strategy entirely, for
	// deployments without a Chrome binary.
	DisableRich bool `yaml:"disableRich"`
}

type ConfigCache struct {
	// Mode is "inmemory" (default) or "redis".
	Mode      string `yaml:"mode"`
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	ExpirySec int    `yaml:"expirySec"`
}

type ConfigServiceApplicant struct {
	DBLabel string      `yaml:"dbLabel"`
	Cache   ConfigCache `yaml:"cache"`
}

type ConfigServiceDispatch struct {
	BatchSize     int `yaml:"batchSize"`
	BatchDelaySec int `yaml:"batchDelaySec"`
}

type ConfigServices struct {
	Applicant ConfigServiceApplicant `yaml:"applicant"`
	Dispatch  ConfigServiceDispatch  `yaml:"dispatch"`
}

// Config contains application config
type Config struct {
	Transport         ConfigTransport         `yaml:"transport"`
	DatabaseResources ConfigDatabaseResources `yaml:"databaseResources"`
	Mailer            ConfigMailer            `yaml:"mailer"`
	Renderer          ConfigRenderer          `yaml:"renderer"`
	Services          ConfigServices          `yaml:"services"`

	JWTSecret string `yaml:"jwtSecret"`

	// Production hides raw error detail from API responses.
	Production bool `yaml:"production"`
}

// LoadConfig need config file name and pointer to struct to hold the configuration value.
// It only supports YAML file content.
func LoadConfig(configFileName string) (cfg Config, err error) {
	fileContent, err := os.ReadFile(configFileName)
	if err != nil {
		err = fmt.Errorf("error read file config %s: %w", configFileName, err)
		return
	}

	dec := yaml.NewDecoder(bytes.NewReader(fileContent))
	dec.KnownFields(false)
	err = dec.Decode(&cfg)
	return
}
