package directory

import (
	"encoding/json"
	"testing"

	"github.com/cgrigis-da/hawalon/identity/identitytest"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/stretchr/testify/assert"
)

func invoke(stub *shimtest.MockStub, tx, method string, input interface{}) ([]byte, int32, string) {
	raw, _ := json.Marshal(input)
	resp := stub.MockInvoke(tx, [][]byte{[]byte(method), raw})
	return resp.Payload, resp.Status, resp.Message
}

func TestRegisterAndLookup(t *testing.T) {
	is := assert.New(t)
	stub := shimtest.NewMockStub("directory", new(DirectoryChaincode))

	identitytest.SetCaller(stub, "org1", "alice")
	payload, status, _ := invoke(stub, "tx-1", "registerAlias", model.RegisterAliasInput{Alias: "  Alice  "})
	is.EqualValues(shim.OK, status)
	var stored model.Alias
	is.NoError(json.Unmarshal(payload, &stored))
	is.Equal(model.Alias{Party: "org1::alice", Alias: "Alice"}, stored)

	event := <-stub.ChaincodeEventsChannel
	is.Equal(EventAliasRegistered, event.EventName)

	payload, status, _ = invoke(stub, "tx-2", "lookupAlias", model.LookupAliasInput{Party: "org1::alice"})
	is.EqualValues(shim.OK, status)
	var found model.Alias
	is.NoError(json.Unmarshal(payload, &found))
	is.Equal("Alice", found.Alias)

	// unknown party falls back to its identifier
	payload, status, _ = invoke(stub, "tx-3", "lookupAlias", model.LookupAliasInput{Party: "org2::bob"})
	is.EqualValues(shim.OK, status)
	is.NoError(json.Unmarshal(payload, &found))
	is.Equal("org2::bob", found.Alias)

	// re-registering replaces
	_, status, _ = invoke(stub, "tx-4", "registerAlias", model.RegisterAliasInput{Alias: "Ally"})
	is.EqualValues(shim.OK, status)
	identitytest.SetCaller(stub, "org2", "bob")
	_, status, _ = invoke(stub, "tx-5", "registerAlias", model.RegisterAliasInput{Alias: "Bob"})
	is.EqualValues(shim.OK, status)

	payload, status, _ = invoke(stub, "tx-6", "listAliases", struct{}{})
	is.EqualValues(shim.OK, status)
	var all []model.Alias
	is.NoError(json.Unmarshal(payload, &all))
	is.ElementsMatch([]model.Alias{
		{Party: "org1::alice", Alias: "Ally"},
		{Party: "org2::bob", Alias: "Bob"},
	}, all)
}

func TestRegisterRejects(t *testing.T) {
	is := assert.New(t)
	stub := shimtest.NewMockStub("directory", new(DirectoryChaincode))
	identitytest.SetCaller(stub, "org1", "alice")

	_, status, _ := invoke(stub, "tx-1", "registerAlias", model.RegisterAliasInput{Alias: "   "})
	is.EqualValues(shim.ERROR, status)

	long := make([]byte, maxAliasLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, status, _ = invoke(stub, "tx-2", "registerAlias", model.RegisterAliasInput{Alias: string(long)})
	is.EqualValues(shim.ERROR, status)

	_, status, _ = invoke(stub, "tx-3", "lookupAlias", model.LookupAliasInput{})
	is.EqualValues(shim.ERROR, status)

	_, status, msg := invoke(stub, "tx-4", "follow", struct{}{})
	is.EqualValues(shim.ERROR, status)
	is.Equal("not supported", msg)

	is.Empty(stub.State)
}
