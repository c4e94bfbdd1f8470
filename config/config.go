// Package config : settings of the hawalon and directory chaincode processes
package config

import (
	"fmt"
	"os"

	"github.com/go-ini/ini"
)

const (
	// EnvConfigFile : path of ini file, optional
	EnvConfigFile = "HAWALON_CONFIG"
	// EnvChaincodeID : package id assigned by peer for external chaincode
	EnvChaincodeID = "CHAINCODE_ID"
	// EnvServerAddress : listen address when running as chaincode server
	EnvServerAddress = "CHAINCODE_SERVER_ADDRESS"
)

// Chaincode : [Chaincode] section
type Chaincode struct {
	// ID : chaincode package id, required to run as a server
	ID string
	// Address : listen address, empty means connect to peer with shim.Start
	Address       string
	TLSDisabled   bool
	TLSKeyFile    string
	TLSCertFile   string
	ClientCACerts string
}

// Log : [Log] section
type Log struct {
	Level string
	Dev   bool
}

// Protocol : [Protocol] section
type Protocol struct {
	// HashAlgorithm : network wide hash lock algorithm
	HashAlgorithm string
	// DirectoryChaincode : name of alias directory chaincode on same channel,
	// empty disables alias lookup
	DirectoryChaincode string
}

type Config struct {
	Chaincode Chaincode
	Log       Log
	Protocol  Protocol
}

// Default : settings used when no file is given
func Default() *Config {
	return &Config{
		Chaincode: Chaincode{TLSDisabled: true},
		Log:       Log{Level: "info"},
		Protocol: Protocol{
			HashAlgorithm:      "SHA256",
			DirectoryChaincode: "directory",
		},
	}
}

// Parse : reads ini data (file name, []byte or io.Reader) over defaults
func Parse(source interface{}) (*Config, error) {
	cfg := Default()
	file, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("failed to load config : %w", err)
	}
	sections := map[string]interface{}{
		"Chaincode": &cfg.Chaincode,
		"Log":       &cfg.Log,
		"Protocol":  &cfg.Protocol,
	}
	for name, v := range sections {
		if !file.HasSection(name) {
			continue
		}
		if err := file.Section(name).MapTo(v); err != nil {
			return nil, fmt.Errorf("failed to map [%s] : %w", name, err)
		}
	}
	return cfg, nil
}

// Load : reads file named by HAWALON_CONFIG when set, then applies
// CHAINCODE_ID and CHAINCODE_SERVER_ADDRESS overrides
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		var err error
		cfg, err = Parse(path)
		if err != nil {
			return nil, err
		}
	}
	if v := os.Getenv(EnvChaincodeID); v != "" {
		cfg.Chaincode.ID = v
	}
	if v := os.Getenv(EnvServerAddress); v != "" {
		cfg.Chaincode.Address = v
	}
	return cfg, cfg.Validate()
}

// Validate : checks settings needed to start
func (c *Config) Validate() error {
	if c.Chaincode.Address != "" && c.Chaincode.ID == "" {
		return fmt.Errorf("chaincode id is required to listen on %s", c.Chaincode.Address)
	}
	if !c.Chaincode.TLSDisabled && (c.Chaincode.TLSKeyFile == "" || c.Chaincode.TLSCertFile == "") {
		return fmt.Errorf("tls key and cert files are required when tls is enabled")
	}
	if c.Protocol.HashAlgorithm == "" {
		return fmt.Errorf("hash algorithm is required")
	}
	return nil
}
