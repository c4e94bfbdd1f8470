// Package model : contains type definitions for
// storing transfer entities on hawalon chaincode worldstate
// input/output to/from hawalon chaincode methods
// input/output to/from directory chaincode
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// HashLock : commitment to a secret, gates redemption of a LockedIou
type HashLock struct {
	// Algorithm : digest algorithm tag, e.g. SHA256
	Algorithm string `json:"algorithm"`
	// Digest : lowercase hex encoded digest of the secret
	Digest string `json:"digest"`
}

func (l HashLock) String() string {
	return fmt.Sprintf("%s:%s", l.Algorithm, l.Digest)
}

// TransferProposal : one version of an in-flight multi hop transfer.
// proposals of one transfer form an append only log keyed by ChainID,
// a forward appends a new version and links the old one to it.
type TransferProposal struct {
	// ID : ChainID:Seq
	ID      string `json:"id"`
	ChainID string `json:"chainId"`
	Seq     int    `json:"seq"`
	// Path : most recent hop first, last entry is the origin
	Path        []string        `json:"path"`
	Destination string          `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
	Lock        HashLock        `json:"lock"`
	// Link : id of successor proposal, set once the proposal is forwarded
	Link      string `json:"link,omitempty"`
	Accepted  bool   `json:"accepted,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Holder : party that may act next on the proposal
func (p *TransferProposal) Holder() string {
	if len(p.Path) == 0 {
		return ""
	}
	return p.Path[0]
}

// Origin : initiator of the transfer
func (p *TransferProposal) Origin() string {
	if len(p.Path) == 0 {
		return ""
	}
	return p.Path[len(p.Path)-1]
}

// Terminal : true when proposal was forwarded, accepted or cancelled
func (p *TransferProposal) Terminal() bool {
	return p.Link != "" || p.Accepted || p.Cancelled
}

// State : lifecycle state name used by queries and events
func (p *TransferProposal) State() string {
	switch {
	case p.Cancelled:
		return ProposalStateCANCELLED
	case p.Accepted:
		return ProposalStateACCEPTED
	case p.Link != "":
		return ProposalStateFORWARDED
	}
	return ProposalStatePROPOSED
}

const (
	ProposalStatePROPOSED  = "PROPOSED"
	ProposalStateFORWARDED = "FORWARDED"
	ProposalStateACCEPTED  = "ACCEPTED"
	ProposalStateCANCELLED = "CANCELLED"
)

// LockedIou : IOU from Issuer to Owner redeemable by presenting
// the secret behind Lock
type LockedIou struct {
	// ID : ChainID:n, keyed under its transfer
	ID       string          `json:"id"`
	ChainID  string          `json:"chainId"`
	Issuer   string          `json:"issuer"`
	Owner    string          `json:"owner"`
	Amount   decimal.Decimal `json:"amount"`
	Lock     HashLock        `json:"lock"`
	Archived bool            `json:"archived,omitempty"`
	// CreatedAt : tx timestamp (seconds)
	CreatedAt int64 `json:"createdAt"`
}

// Iou : unconditional claim of Owner on Issuer
type Iou struct {
	ID        string          `json:"id"`
	ChainID   string          `json:"chainId"`
	Issuer    string          `json:"issuer"`
	Owner     string          `json:"owner"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt int64           `json:"createdAt"`
}

// Reveal : secret published by unlocking a LockedIou,
// read by Issuer to redeem its own LockedIou upstream
type Reveal struct {
	// ID : id of the unlocked LockedIou
	ID          string   `json:"id"`
	ChainID     string   `json:"chainId"`
	LockedIouID string   `json:"lockedIouId"`
	Issuer      string   `json:"issuer"`
	Owner       string   `json:"owner"`
	Secret      string   `json:"secret"`
	Lock        HashLock `json:"lock"`
}

// Alias : display name registered by a party in directory chaincode
type Alias struct {
	Party string `json:"party"`
	Alias string `json:"alias"`
}
