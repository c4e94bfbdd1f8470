package manager

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cgrigis-da/hawalon/hawala"
	"github.com/cgrigis-da/hawalon/identity"
	"github.com/cgrigis-da/hawalon/log"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// methods.go : state changing methods supported by hawalon chaincode

func (cc *HawalonChaincode) initiate(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#initiate"
	var input model.InitiateInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	log.Debugf("%s input = %+v", fnTag, input)
	lock := model.HashLock{Algorithm: cc.engine.Algorithm(), Digest: input.SecretHash}
	if input.Lock != nil {
		lock = *input.Lock
	}
	return cc.apply(stub, fnTag, hawala.Initiate{
		Intermediary: input.Intermediary,
		Destination:  input.Destination,
		Amount:       input.Amount,
		Lock:         lock,
	})
}

func (cc *HawalonChaincode) acceptAndForward(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#acceptAndForward"
	var input model.ForwardInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	log.Debugf("%s input = %+v", fnTag, input)
	return cc.apply(stub, fnTag, hawala.AcceptAndForward{
		ProposalID: input.ProposalID,
		NextHop:    input.NextHop,
	})
}

func (cc *HawalonChaincode) accept(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#accept"
	var input model.ProposalInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	log.Debugf("%s input = %+v", fnTag, input)
	return cc.apply(stub, fnTag, hawala.Accept{ProposalID: input.ProposalID})
}

func (cc *HawalonChaincode) cancel(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#cancel"
	var input model.ProposalInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	log.Debugf("%s input = %+v", fnTag, input)
	return cc.apply(stub, fnTag, hawala.Cancel{ProposalID: input.ProposalID})
}

func (cc *HawalonChaincode) unlock(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#unlock"
	var input model.UnlockInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	// secret stays out of logs
	log.Debugf("%s lockedIouId = %s", fnTag, input.LockedIouID)
	return cc.apply(stub, fnTag, hawala.Unlock{
		LockedIouID: input.LockedIouID,
		Secret:      input.Secret,
	})
}

// redeemFromReveal : caller redeems its own locked iou of a transfer
// with the secret published downstream
func (cc *HawalonChaincode) redeemFromReveal(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#redeemFromReveal"
	var input model.RevealInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	log.Debugf("%s input = %+v", fnTag, input)
	chainID, _, err := hawala.SplitLockedIouID(input.RevealID)
	if err != nil {
		return rejected(fnTag, err)
	}
	var reveal model.Reveal
	found, err := getJSON(stub, buildRevealKey(chainID, input.RevealID), &reveal)
	if err != nil {
		return shim.Error(err.Error())
	}
	if !found {
		return rejected(fnTag, fmt.Errorf("%w: reveal %s", hawala.ErrNotFound, input.RevealID))
	}
	caller, err := identity.Caller(stub)
	if err != nil {
		log.Infof("%s %s", fnTag, errGettingCaller)
		return shim.Error(err.Error())
	}
	if caller != reveal.Issuer {
		return rejected(fnTag, fmt.Errorf("%w: reveal %s is addressed to %s", hawala.ErrNotAuthorized, reveal.ID, reveal.Issuer))
	}
	held, err := ledgerView{stub: stub}.LockedIous(chainID)
	if err != nil {
		return shim.Error(err.Error())
	}
	cmd, ok := hawala.Upstream(&reveal, held)
	if !ok {
		return rejected(fnTag, fmt.Errorf("%w: no locked iou of %s to redeem in transfer %s", hawala.ErrNotFound, caller, chainID))
	}
	log.Debugf("%s redeeming locked iou = %s", fnTag, cmd.LockedIouID)
	return cc.apply(stub, fnTag, cmd)
}

// apply : runs cmd for the caller against current worldstate and commits the transition
func (cc *HawalonChaincode) apply(stub shim.ChaincodeStubInterface, fnTag string, cmd hawala.Command) peer.Response {
	log.Debugf("%s get caller", fnTag)
	caller, err := identity.Caller(stub)
	if err != nil {
		log.Infof("%s %s", fnTag, errGettingCaller)
		return shim.Error(err.Error())
	}
	env, err := newEnv(stub)
	if err != nil {
		log.Infof("%s error getting timestamp : %s", fnTag, err.Error())
		return shim.Error(err.Error())
	}
	tr, err := cc.engine.Apply(ledgerView{stub: stub}, env, caller, cmd)
	if err != nil {
		return rejected(fnTag, err)
	}
	if err := commit(stub, tr); err != nil {
		return shim.Error(err.Error())
	}
	log.Infof("%s %s by %s chain = %s", fnTag, tr.Event.Name, caller, tr.Event.ChainID)

	out := model.TransitionOutput{}
	if n := len(tr.Proposals); n > 0 {
		out.Proposal = tr.Proposals[n-1]
	}
	if len(tr.LockedIous) > 0 {
		out.LockedIou = tr.LockedIous[0]
	}
	if len(tr.Ious) > 0 {
		out.Iou = tr.Ious[0]
	}
	if len(tr.Reveals) > 0 {
		out.Reveal = tr.Reveals[0]
	}
	raw, _ := json.Marshal(out)
	if log.IsDev {
		log.Debugf("%s output = %s", fnTag, string(raw))
	}
	return shim.Success(raw)
}

// rejected : error response for a refused transition, prefixed with its code
// so clients can tell a stale view from a substrate failure
func rejected(fnTag string, err error) peer.Response {
	code := hawala.Code(err)
	if code == "" {
		log.Errorf("%s %s", fnTag, err.Error())
		return shim.Error(err.Error())
	}
	log.Infof("%s %s %s", fnTag, errRejected, code)
	if errors.Is(err, hawala.ErrInvalidSecret) {
		return shim.Error(code)
	}
	return shim.Error(fmt.Sprintf("%s: %s", code, err.Error()))
}
