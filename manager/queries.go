package manager

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cgrigis-da/hawalon/hawala"
	"github.com/cgrigis-da/hawalon/identity"
	"github.com/cgrigis-da/hawalon/log"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// queries.go : read only methods feeding client views

func (cc *HawalonChaincode) getProposal(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#getProposal"
	var input model.ProposalInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	p, err := ledgerView{stub: stub}.Proposal(input.ProposalID)
	if err != nil {
		return shim.Error(err.Error())
	}
	if p == nil {
		return rejected(fnTag, fmt.Errorf("%w: proposal %s", hawala.ErrNotFound, input.ProposalID))
	}
	return success(cc.proposalView(stub, p))
}

// getChain : every version of a transfer, root first
func (cc *HawalonChaincode) getChain(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#getChain"
	var input model.ChainInput
	if err := json.Unmarshal(in, &input); err != nil || input.ChainID == "" {
		log.Infof("%s %s", fnTag, errBadRequestObject)
		return shim.Error("bad request object")
	}
	chain, err := scan[model.TransferProposal](stub, proposalObjectType, input.ChainID)
	if err != nil {
		return shim.Error(err.Error())
	}
	if len(chain) == 0 {
		return rejected(fnTag, fmt.Errorf("%w: transfer %s", hawala.ErrNotFound, input.ChainID))
	}
	sort.Slice(chain, func(i, j int) bool { return chain[i].Seq < chain[j].Seq })
	out := make([]model.ProposalView, 0, len(chain))
	for _, p := range chain {
		out = append(out, cc.proposalView(stub, p))
	}
	return success(out)
}

// listProposalsForMe : live proposals waiting for caller to forward or accept
func (cc *HawalonChaincode) listProposalsForMe(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#listProposalsForMe"
	caller, err := identity.Caller(stub)
	if err != nil {
		log.Infof("%s %s", fnTag, errGettingCaller)
		return shim.Error(err.Error())
	}
	all, err := scan[model.TransferProposal](stub, proposalObjectType)
	if err != nil {
		return shim.Error(err.Error())
	}
	out := make([]model.ProposalView, 0)
	for _, p := range all {
		if p.Terminal() || p.Holder() != caller {
			continue
		}
		out = append(out, cc.proposalView(stub, p))
	}
	log.Debugf("%s %d proposals for %s", fnTag, len(out), caller)
	return success(out)
}

// listLockedIous : active locked ious owned by caller (INCOMING)
// or issued by caller (OUTGOING)
func (cc *HawalonChaincode) listLockedIous(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#listLockedIous"
	var input model.ListLockedIousInput
	if err := json.Unmarshal(in, &input); err != nil {
		log.Infof("%s %s :: %s", fnTag, errBadRequestObject, err.Error())
		return shim.Error("bad request object")
	}
	if input.Direction == "" {
		input.Direction = model.DirectionINCOMING
	}
	if input.Direction != model.DirectionINCOMING && input.Direction != model.DirectionOUTGOING {
		log.Infof("%s %s direction = %s", fnTag, errBadRequestObject, input.Direction)
		return shim.Error("direction must be INCOMING or OUTGOING")
	}
	caller, err := identity.Caller(stub)
	if err != nil {
		log.Infof("%s %s", fnTag, errGettingCaller)
		return shim.Error(err.Error())
	}
	all, err := scan[model.LockedIou](stub, lockedIouObjectType)
	if err != nil {
		return shim.Error(err.Error())
	}
	out := make([]model.LockedIouView, 0)
	for _, l := range all {
		if l.Archived {
			continue
		}
		if (input.Direction == model.DirectionINCOMING && l.Owner == caller) ||
			(input.Direction == model.DirectionOUTGOING && l.Issuer == caller) {
			out = append(out, model.LockedIouView{
				LockedIou: *l,
				Aliases:   cc.aliases(stub, l.Issuer, l.Owner),
			})
		}
	}
	return success(out)
}

// listIous : ious owned by caller
func (cc *HawalonChaincode) listIous(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#listIous"
	caller, err := identity.Caller(stub)
	if err != nil {
		log.Infof("%s %s", fnTag, errGettingCaller)
		return shim.Error(err.Error())
	}
	all, err := scan[model.Iou](stub, iouObjectType)
	if err != nil {
		return shim.Error(err.Error())
	}
	out := make([]model.IouView, 0)
	for _, iou := range all {
		if iou.Owner == caller {
			out = append(out, model.IouView{Iou: *iou, Aliases: cc.aliases(stub, iou.Issuer, iou.Owner)})
		}
	}
	return success(out)
}

// listReveals : reveals caller can use to redeem upstream
func (cc *HawalonChaincode) listReveals(stub shim.ChaincodeStubInterface, in []byte) peer.Response {
	const fnTag = "#listReveals"
	caller, err := identity.Caller(stub)
	if err != nil {
		log.Infof("%s %s", fnTag, errGettingCaller)
		return shim.Error(err.Error())
	}
	all, err := scan[model.Reveal](stub, revealObjectType)
	if err != nil {
		return shim.Error(err.Error())
	}
	out := make([]*model.Reveal, 0)
	for _, r := range all {
		if r.Issuer == caller {
			out = append(out, r)
		}
	}
	return success(out)
}

func (cc *HawalonChaincode) proposalView(stub shim.ChaincodeStubInterface, p *model.TransferProposal) model.ProposalView {
	parties := append([]string{p.Destination}, p.Path...)
	return model.ProposalView{
		TransferProposal: *p,
		State:            p.State(),
		Aliases:          cc.aliases(stub, parties...),
	}
}

func success(v interface{}) peer.Response {
	raw, err := json.Marshal(v)
	if err != nil {
		return shim.Error(err.Error())
	}
	return shim.Success(raw)
}
