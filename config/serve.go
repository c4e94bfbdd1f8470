package config

import (
	"fmt"
	"os"

	"github.com/cgrigis-da/hawalon/log"
	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// Serve : runs cc as external chaincode server when an address is set,
// otherwise connects to the peer that launched the process
func Serve(c *Config, cc shim.Chaincode) error {
	if c.Chaincode.Address == "" {
		log.Info("starting chaincode with peer connection")
		return shim.Start(cc)
	}
	props, err := c.TLSProperties()
	if err != nil {
		return err
	}
	server := &shim.ChaincodeServer{
		CCID:     c.Chaincode.ID,
		Address:  c.Chaincode.Address,
		CC:       cc,
		TLSProps: props,
	}
	log.Infof("starting chaincode server %s on %s", c.Chaincode.ID, c.Chaincode.Address)
	return server.Start()
}

// TLSProperties : reads key, cert and client ca files named in [Chaincode]
func (c *Config) TLSProperties() (shim.TLSProperties, error) {
	props := shim.TLSProperties{Disabled: c.Chaincode.TLSDisabled}
	if props.Disabled {
		return props, nil
	}
	var err error
	if props.Key, err = os.ReadFile(c.Chaincode.TLSKeyFile); err != nil {
		return props, fmt.Errorf("failed to read tls key : %w", err)
	}
	if props.Cert, err = os.ReadFile(c.Chaincode.TLSCertFile); err != nil {
		return props, fmt.Errorf("failed to read tls cert : %w", err)
	}
	if c.Chaincode.ClientCACerts != "" {
		if props.ClientCACerts, err = os.ReadFile(c.Chaincode.ClientCACerts); err != nil {
			return props, fmt.Errorf("failed to read client ca certs : %w", err)
		}
	}
	return props, nil
}
