// Package identity : derives ledger parties from transaction creators
package identity

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// Caller : party submitting current transaction, mspId::commonName
func Caller(stub shim.ChaincodeStubInterface) (string, error) {
	ci, err := cid.New(stub)
	if err != nil {
		return "", fmt.Errorf("failed to read creator : %w", err)
	}
	mspID, err := ci.GetMSPID()
	if err != nil {
		return "", err
	}
	cert, err := ci.GetX509Certificate()
	if err != nil {
		return "", err
	}
	if cert == nil {
		return "", fmt.Errorf("creator of msp %s has no x509 certificate", mspID)
	}
	return Party(mspID, cert.Subject.CommonName), nil
}

// Party : party identifier of a certificate holder
func Party(mspID, commonName string) string {
	return fmt.Sprintf("%s::%s", mspID, commonName)
}
