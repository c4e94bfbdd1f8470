package manager

import (
	"encoding/json"
	"fmt"

	"github.com/cgrigis-da/hawalon/hawala"
	"github.com/cgrigis-da/hawalon/log"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/golang/protobuf/ptypes"
	"github.com/google/uuid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// ledger.go : worldstate keys, reads and writes of transfer entities

// idNamespace : namespace of name based uuids derived from tx ids
var idNamespace = uuid.MustParse("6f1b7a3c-5d0e-4c52-9a7e-2b8f3c1d4e90")

// ledgerView : hawala.View over chaincode worldstate
type ledgerView struct {
	stub shim.ChaincodeStubInterface
}

func (v ledgerView) Proposal(id string) (*model.TransferProposal, error) {
	chainID, seq, err := hawala.SplitProposalID(id)
	if err != nil {
		return nil, nil
	}
	var p model.TransferProposal
	found, err := getJSON(v.stub, buildProposalKey(chainID, seq), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (v ledgerView) LockedIou(id string) (*model.LockedIou, error) {
	chainID, _, err := hawala.SplitLockedIouID(id)
	if err != nil {
		return nil, nil
	}
	var l model.LockedIou
	found, err := getJSON(v.stub, buildLockedIouKey(chainID, id), &l)
	if err != nil || !found {
		return nil, err
	}
	return &l, nil
}

// LockedIous : range read limited to one transfer, so a state changing
// transaction only conflicts with writes to the same transfer
func (v ledgerView) LockedIous(chainID string) ([]*model.LockedIou, error) {
	return scan[model.LockedIou](v.stub, lockedIouObjectType, chainID)
}

// newEnv : ids and timestamp of current transaction.
// ids are name based uuids of tx id, every endorser derives the same ones.
func newEnv(stub shim.ChaincodeStubInterface) (hawala.Env, error) {
	ts, err := stub.GetTxTimestamp()
	if err != nil {
		return hawala.Env{}, err
	}
	t, err := ptypes.Timestamp(ts)
	if err != nil {
		return hawala.Env{}, err
	}
	txID := stub.GetTxID()
	counts := make(map[string]int)
	return hawala.Env{
		NewID: func(kind string) string {
			counts[kind]++
			name := fmt.Sprintf("%s/%s/%d", txID, kind, counts[kind])
			return uuid.NewSHA1(idNamespace, []byte(name)).String()
		},
		Timestamp: t.Unix(),
	}, nil
}

func getJSON(stub shim.ChaincodeStubInterface, key string, v interface{}) (bool, error) {
	raw, err := stub.GetState(key)
	if err != nil {
		log.Errorf("[%s] [%s] %s", errGettingState, key, err.Error())
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("corrupt record at %s : %w", key, err)
	}
	return true, nil
}

func putJSON(stub shim.ChaincodeStubInterface, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := stub.PutState(key, raw); err != nil {
		log.Errorf("[%s] [%s] %s", errPuttingState, key, err.Error())
		return err
	}
	return nil
}

// scan : decodes every record under objectType~attrs...
func scan[T any](stub shim.ChaincodeStubInterface, objectType string, attrs ...string) ([]*T, error) {
	iter, err := stub.GetStateByPartialCompositeKey(objectType, attrs)
	if err != nil {
		log.Errorf("[%s] [%s] %s", errGettingState, objectType, err.Error())
		return nil, err
	}
	defer iter.Close()
	var out []*T
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, err
		}
		v := new(T)
		if err := json.Unmarshal(kv.Value, v); err != nil {
			return nil, fmt.Errorf("corrupt record at %s : %w", kv.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func buildProposalKey(chainID string, seq int) string {
	k, _ := shim.CreateCompositeKey(proposalObjectType, []string{chainID, fmt.Sprintf("%06d", seq)})
	return k
}

func buildLockedIouKey(chainID, id string) string {
	k, _ := shim.CreateCompositeKey(lockedIouObjectType, []string{chainID, id})
	return k
}

func buildIouKey(id string) string {
	k, _ := shim.CreateCompositeKey(iouObjectType, []string{id})
	return k
}

func buildRevealKey(chainID, lockedIouID string) string {
	k, _ := shim.CreateCompositeKey(revealObjectType, []string{chainID, lockedIouID})
	return k
}
