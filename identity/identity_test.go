package identity

import (
	"testing"

	"github.com/cgrigis-da/hawalon/identity/identitytest"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/stretchr/testify/assert"
)

func TestCaller(t *testing.T) {
	is := assert.New(t)
	stub := shimtest.NewMockStub("identity", nil)

	identitytest.SetCaller(stub, "org1", "alice")
	party, err := Caller(stub)
	is.NoError(err)
	is.Equal("org1::alice", party)
	is.Equal(Party("org1", "alice"), party)

	identitytest.SetCaller(stub, "org2", "bob")
	party, err = Caller(stub)
	is.NoError(err)
	is.Equal("org2::bob", party)
}

func TestCallerWithoutCreator(t *testing.T) {
	is := assert.New(t)
	stub := shimtest.NewMockStub("identity", nil)

	_, err := Caller(stub)
	is.Error(err)

	stub.Creator = []byte("garbage")
	_, err = Caller(stub)
	is.Error(err)
}
