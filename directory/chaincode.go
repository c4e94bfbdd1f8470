// Package directory : alias directory chaincode.
// parties register a display name for themselves, other chaincodes on the
// channel resolve names with lookupAlias.
package directory

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/cgrigis-da/hawalon/identity"
	"github.com/cgrigis-da/hawalon/log"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/peer"
)

const (
	aliasObjectType = "DIRECTORY~ALIAS"
	maxAliasLength  = 64

	// EventAliasRegistered : emitted with the stored alias as payload
	EventAliasRegistered = "ALIAS_REGISTERED"
)

type DirectoryChaincode struct{}

func (*DirectoryChaincode) Init(stub shim.ChaincodeStubInterface) peer.Response {
	log.Infof("Initializing Directory Chaincode on %s", stub.GetChannelID())
	return shim.Success(nil)
}

func (*DirectoryChaincode) Invoke(stub shim.ChaincodeStubInterface) peer.Response {
	methodName, args := stub.GetFunctionAndParameters()
	m, ok := methodRegistry[methodName]
	if !ok {
		log.Errorf("[ERROR_UNSUPPORTED_METHOD] [%s]", methodName)
		return shim.Error("not supported")
	}
	in := []byte("{}")
	if len(args) > 0 {
		in = []byte(args[0])
	}
	log.Debugf("[Invoke] method = %s", methodName)
	return m(stub, in)
}

var methodRegistry = map[string]func(stub shim.ChaincodeStubInterface, in []byte) peer.Response{
	"registerAlias": registerAlias,
	"lookupAlias":   lookupAlias,
	"listAliases":   listAliases,
}

// registerAlias : caller sets or replaces its own alias
func registerAlias(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#registerAlias"
	var input model.RegisterAliasInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s bad request object :: %s", fnTag, err.Error())
		return shim.Error("bad request object")
	}
	alias := strings.TrimSpace(input.Alias)
	if alias == "" || utf8.RuneCountInString(alias) > maxAliasLength {
		return shim.Error("alias must be 1 to 64 characters")
	}
	party, err := identity.Caller(stub)
	if err != nil {
		log.Infof("%s error getting caller : %s", fnTag, err.Error())
		return shim.Error(err.Error())
	}
	raw, _ := json.Marshal(model.Alias{Party: party, Alias: alias})
	if err := stub.PutState(buildAliasKey(party), raw); err != nil {
		log.Errorf("%s error putting alias of %s : %s", fnTag, party, err.Error())
		return shim.Error(err.Error())
	}
	if err := stub.SetEvent(EventAliasRegistered, raw); err != nil {
		return shim.Error(err.Error())
	}
	log.Infof("%s %s is now known as %s", fnTag, party, alias)
	return shim.Success(raw)
}

// lookupAlias : alias of a party, the party id itself when none is registered
func lookupAlias(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#lookupAlias"
	var input model.LookupAliasInput
	if err := json.Unmarshal(in, &input); err != nil || input.Party == "" {
		log.Infof("%s bad request object", fnTag)
		return shim.Error("bad request object")
	}
	raw, err := stub.GetState(buildAliasKey(input.Party))
	if err != nil {
		log.Errorf("%s error getting alias of %s : %s", fnTag, input.Party, err.Error())
		return shim.Error(err.Error())
	}
	if len(raw) == 0 {
		raw, _ = json.Marshal(model.Alias{Party: input.Party, Alias: input.Party})
	}
	return shim.Success(raw)
}

func listAliases(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	iter, err := stub.GetStateByPartialCompositeKey(aliasObjectType, nil)
	if err != nil {
		return shim.Error(err.Error())
	}
	defer iter.Close()
	out := make([]model.Alias, 0)
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return shim.Error(err.Error())
		}
		var a model.Alias
		if err := json.Unmarshal(kv.Value, &a); err != nil {
			return shim.Error(err.Error())
		}
		out = append(out, a)
	}
	raw, _ := json.Marshal(out)
	return shim.Success(raw)
}

func buildAliasKey(party string) string {
	k, _ := shim.CreateCompositeKey(aliasObjectType, []string{party})
	return k
}
