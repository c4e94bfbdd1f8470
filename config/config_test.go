package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `
[Chaincode]
ID = hawalon_1.0:abcd
Address = 0.0.0.0:9999

[Log]
Level = debug
Dev = true

[Protocol]
HashAlgorithm = SHA3-256
DirectoryChaincode = aliases
`

func TestParse(t *testing.T) {
	is := assert.New(t)

	cfg, err := Parse([]byte(sample))
	is.NoError(err)
	is.Equal("hawalon_1.0:abcd", cfg.Chaincode.ID)
	is.Equal("0.0.0.0:9999", cfg.Chaincode.Address)
	is.True(cfg.Chaincode.TLSDisabled)
	is.Equal("debug", cfg.Log.Level)
	is.True(cfg.Log.Dev)
	is.Equal("SHA3-256", cfg.Protocol.HashAlgorithm)
	is.Equal("aliases", cfg.Protocol.DirectoryChaincode)
	is.NoError(cfg.Validate())
}

func TestParseKeepsDefaults(t *testing.T) {
	is := assert.New(t)

	cfg, err := Parse([]byte("[Log]\nLevel = warn\n"))
	is.NoError(err)
	is.Equal("warn", cfg.Log.Level)
	is.Equal("SHA256", cfg.Protocol.HashAlgorithm)
	is.Equal("directory", cfg.Protocol.DirectoryChaincode)
	is.Empty(cfg.Chaincode.Address)
}

func TestValidate(t *testing.T) {
	is := assert.New(t)

	cfg := Default()
	is.NoError(cfg.Validate())

	cfg.Chaincode.Address = ":9999"
	is.Error(cfg.Validate())
	cfg.Chaincode.ID = "cc:1"
	is.NoError(cfg.Validate())

	cfg.Chaincode.TLSDisabled = false
	is.Error(cfg.Validate())
	cfg.Chaincode.TLSKeyFile = "key.pem"
	cfg.Chaincode.TLSCertFile = "cert.pem"
	is.NoError(cfg.Validate())

	cfg.Protocol.HashAlgorithm = ""
	is.Error(cfg.Validate())
}

func TestLoad(t *testing.T) {
	is := assert.New(t)

	path := filepath.Join(t.TempDir(), "hawalon.ini")
	is.NoError(os.WriteFile(path, []byte(sample), 0o600))
	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvServerAddress, "127.0.0.1:7052")

	cfg, err := Load()
	is.NoError(err)
	is.Equal("127.0.0.1:7052", cfg.Chaincode.Address)
	is.Equal("hawalon_1.0:abcd", cfg.Chaincode.ID)

	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.ini"))
	_, err = Load()
	is.Error(err)
}

func TestTLSProperties(t *testing.T) {
	is := assert.New(t)

	cfg := Default()
	props, err := cfg.TLSProperties()
	is.NoError(err)
	is.True(props.Disabled)
	is.Nil(props.Key)

	dir := t.TempDir()
	key := filepath.Join(dir, "key.pem")
	cert := filepath.Join(dir, "cert.pem")
	is.NoError(os.WriteFile(key, []byte("key"), 0o600))
	is.NoError(os.WriteFile(cert, []byte("cert"), 0o600))

	cfg.Chaincode.TLSDisabled = false
	cfg.Chaincode.TLSKeyFile = key
	cfg.Chaincode.TLSCertFile = cert
	props, err = cfg.TLSProperties()
	is.NoError(err)
	is.False(props.Disabled)
	is.Equal([]byte("key"), props.Key)
	is.Equal([]byte("cert"), props.Cert)
	is.Nil(props.ClientCACerts)

	cfg.Chaincode.ClientCACerts = filepath.Join(dir, "missing.pem")
	_, err = cfg.TLSProperties()
	is.Error(err)
}
