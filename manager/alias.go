package manager

import (
	"encoding/json"

	"github.com/cgrigis-da/hawalon/log"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// aliases : display names of parties, looked up in directory chaincode.
// a party without alias, or any lookup failure, shows its raw identifier.
func (cc *HawalonChaincode) aliases(stub shim.ChaincodeStubInterface, parties ...string) map[string]string {
	out := make(map[string]string, len(parties))
	for _, p := range parties {
		if _, ok := out[p]; ok {
			continue
		}
		out[p] = cc.lookupAlias(stub, p)
	}
	return out
}

func (cc *HawalonChaincode) lookupAlias(stub shim.ChaincodeStubInterface, party string) string {
	const fnTag = "#lookupAlias"
	if cc.directory == "" {
		return party
	}
	in, _ := json.Marshal(model.LookupAliasInput{Party: party})
	resp := stub.InvokeChaincode(cc.directory, [][]byte{[]byte("lookupAlias"), in}, "")
	if resp.Status != shim.OK {
		log.Debugf("%s %s chaincode = %s : %s", fnTag, errInvokeChaincode, cc.directory, resp.GetMessage())
		return party
	}
	var alias model.Alias
	if err := json.Unmarshal(resp.Payload, &alias); err != nil || alias.Alias == "" {
		return party
	}
	return alias.Alias
}
