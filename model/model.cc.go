package model

import "github.com/shopspring/decimal"

// model.cc.go : defines all inputs/outputs received/returned by hawalon chaincode
// and by directory chaincode

// InitiateInput : input of initiate method, origin is the caller.
// either Lock or SecretHash (sha256 hex of the secret, as produced by clients)
// must be set
type InitiateInput struct {
	Intermediary string          `json:"intermediary"`
	Destination  string          `json:"destination"`
	Amount       decimal.Decimal `json:"amount"`
	Lock         *HashLock       `json:"lock,omitempty"`
	SecretHash   string          `json:"secretHash,omitempty"`
}

// ForwardInput : input of acceptAndForward method
type ForwardInput struct {
	ProposalID string `json:"proposalId"`
	NextHop    string `json:"nextHop"`
}

// ProposalInput : input of accept, cancel and getProposal methods
type ProposalInput struct {
	ProposalID string `json:"proposalId"`
}

// ChainInput : input of getChain method
type ChainInput struct {
	ChainID string `json:"chainId"`
}

// UnlockInput : input of unlock method
type UnlockInput struct {
	LockedIouID string `json:"lockedIouId"`
	Secret      string `json:"secret"`
}

// RevealInput : input of redeemFromReveal method
type RevealInput struct {
	RevealID string `json:"revealId"`
}

const (
	DirectionINCOMING = "INCOMING"
	DirectionOUTGOING = "OUTGOING"
)

// ListLockedIousInput : input of listLockedIous method.
// INCOMING : caller is owner, OUTGOING : caller is issuer
type ListLockedIousInput struct {
	Direction string `json:"direction"`
}

// TransitionOutput : output of every state changing method
type TransitionOutput struct {
	Proposal  *TransferProposal `json:"proposal,omitempty"`
	LockedIou *LockedIou        `json:"lockedIou,omitempty"`
	Iou       *Iou              `json:"iou,omitempty"`
	Reveal    *Reveal           `json:"reveal,omitempty"`
}

// ProposalView : proposal together with display names of involved parties
type ProposalView struct {
	TransferProposal
	State   string            `json:"state"`
	Aliases map[string]string `json:"aliases"`
}

// LockedIouView : locked iou together with display names of issuer and owner
type LockedIouView struct {
	LockedIou
	Aliases map[string]string `json:"aliases"`
}

// IouView : iou together with display names of issuer and owner
type IouView struct {
	Iou
	Aliases map[string]string `json:"aliases"`
}

// Event : payload of chaincode event emitted by a state changing method
type Event struct {
	Name       string            `json:"name"`
	ChainID    string            `json:"chainId"`
	ProposalID string            `json:"proposalId,omitempty"`
	Proposal   *TransferProposal `json:"proposal,omitempty"`
	LockedIou  *LockedIou        `json:"lockedIou,omitempty"`
	Reveal     *Reveal           `json:"reveal,omitempty"`
}

const (
	EventTransferProposed  = "TRANSFER_PROPOSED"
	EventTransferForwarded = "TRANSFER_FORWARDED"
	EventTransferAccepted  = "TRANSFER_ACCEPTED"
	EventTransferCancelled = "TRANSFER_CANCELLED"
	EventIouUnlocked       = "IOU_UNLOCKED"
)

// RegisterAliasInput : input of directory registerAlias method, party is the caller
type RegisterAliasInput struct {
	Alias string `json:"alias"`
}

// LookupAliasInput : input of directory lookupAlias method
type LookupAliasInput struct {
	Party string `json:"party"`
}
