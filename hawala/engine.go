// Package hawala : state transitions of multi hop hash locked transfers.
// never touches storage, callers read entities through a View
// and persist the returned Transition.
package hawala

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cgrigis-da/hawalon/model"
	"github.com/shopspring/decimal"
)

// View : read only window onto current ledger entities.
// lookups return nil, nil when the entity does not exist.
type View interface {
	Proposal(id string) (*model.TransferProposal, error)
	LockedIou(id string) (*model.LockedIou, error)
	// LockedIous : every locked iou of one transfer, archived ones included
	LockedIous(chainID string) ([]*model.LockedIou, error)
}

// Env : per transaction inputs of a transition.
// NewID must be deterministic for a given transaction.
type Env struct {
	NewID     func(kind string) string
	Timestamp int64
}

// Command : one of Initiate, AcceptAndForward, Accept, Unlock, Cancel
type Command interface {
	Name() string
}

type Initiate struct {
	Intermediary string
	Destination  string
	Amount       decimal.Decimal
	Lock         model.HashLock
}

type AcceptAndForward struct {
	ProposalID string
	NextHop    string
}

type Accept struct {
	ProposalID string
}

type Unlock struct {
	LockedIouID string
	Secret      string
}

type Cancel struct {
	ProposalID string
}

func (Initiate) Name() string         { return "initiate" }
func (AcceptAndForward) Name() string { return "acceptAndForward" }
func (Accept) Name() string           { return "accept" }
func (Unlock) Name() string           { return "unlock" }
func (Cancel) Name() string           { return "cancel" }

// Transition : every entity written by one command and the event announcing it.
// Proposals and LockedIous hold both created and replaced versions.
type Transition struct {
	Proposals  []*model.TransferProposal
	LockedIous []*model.LockedIou
	Ious       []*model.Iou
	Reveals    []*model.Reveal
	Event      model.Event
}

// Engine : applies commands on behalf of an acting party
type Engine struct {
	algorithm string
}

// NewEngine : engine accepting locks of the given algorithm only
func NewEngine(algorithm string) (*Engine, error) {
	if !SupportedAlgorithm(algorithm) {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidLock, algorithm)
	}
	return &Engine{algorithm: algorithm}, nil
}

// Algorithm : network wide hash lock algorithm
func (e *Engine) Algorithm() string { return e.algorithm }

// Apply : validates cmd against current state and returns the resulting
// transition. entities returned by v are never modified.
func (e *Engine) Apply(v View, env Env, actor string, cmd Command) (*Transition, error) {
	switch c := cmd.(type) {
	case Initiate:
		return e.initiate(env, actor, c)
	case AcceptAndForward:
		return e.acceptAndForward(v, env, actor, c)
	case Accept:
		return e.accept(v, env, actor, c)
	case Unlock:
		return e.unlock(v, env, actor, c)
	case Cancel:
		return e.cancel(v, actor, c)
	}
	return nil, fmt.Errorf("unsupported command %T", cmd)
}

func (e *Engine) initiate(env Env, origin string, c Initiate) (*Transition, error) {
	if !c.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, c.Amount)
	}
	if origin == "" || c.Intermediary == "" || c.Destination == "" {
		return nil, fmt.Errorf("%w: origin, intermediary and destination are required", ErrInvalidRoute)
	}
	if c.Intermediary == origin {
		return nil, fmt.Errorf("%w: intermediary must differ from origin", ErrInvalidRoute)
	}
	if c.Destination == origin {
		return nil, fmt.Errorf("%w: destination must differ from origin", ErrInvalidRoute)
	}
	if c.Lock.Algorithm != e.algorithm {
		return nil, fmt.Errorf("%w: network uses %s, got %q", ErrInvalidLock, e.algorithm, c.Lock.Algorithm)
	}
	lock, err := ParseLock(c.Lock.Algorithm, c.Lock.Digest)
	if err != nil {
		return nil, err
	}
	path := []string{c.Intermediary, origin}
	if err := ValidateRoute(path, origin); err != nil {
		return nil, err
	}
	chainID := env.NewID("chain")
	p := &model.TransferProposal{
		ID:          ProposalID(chainID, 0),
		ChainID:     chainID,
		Seq:         0,
		Path:        path,
		Destination: c.Destination,
		Amount:      c.Amount,
		Lock:        lock,
		CreatedAt:   env.Timestamp,
	}
	return &Transition{
		Proposals: []*model.TransferProposal{p},
		Event: model.Event{
			Name:       model.EventTransferProposed,
			ChainID:    chainID,
			ProposalID: p.ID,
			Proposal:   p,
		},
	}, nil
}

func (e *Engine) acceptAndForward(v View, env Env, actor string, c AcceptAndForward) (*Transition, error) {
	p, err := e.liveProposal(v, c.ProposalID)
	if err != nil {
		return nil, err
	}
	if actor != p.Holder() {
		return nil, fmt.Errorf("%w: only %s can forward %s", ErrNotAuthorized, p.Holder(), p.ID)
	}
	if actor == p.Destination {
		return nil, fmt.Errorf("%w: destination must accept %s, not forward it", ErrInvalidRoute, p.ID)
	}
	path, err := extend(p.Path, c.NextHop)
	if err != nil {
		return nil, err
	}
	if err := ValidateRoute(path, p.Origin()); err != nil {
		return nil, err
	}
	next := &model.TransferProposal{
		ID:          ProposalID(p.ChainID, p.Seq+1),
		ChainID:     p.ChainID,
		Seq:         p.Seq + 1,
		Path:        path,
		Destination: p.Destination,
		Amount:      p.Amount,
		Lock:        p.Lock,
		CreatedAt:   env.Timestamp,
	}
	old := *p
	old.Link = next.ID
	liou := e.hopIou(env, p)
	return &Transition{
		Proposals:  []*model.TransferProposal{&old, next},
		LockedIous: []*model.LockedIou{liou},
		Event: model.Event{
			Name:       model.EventTransferForwarded,
			ChainID:    p.ChainID,
			ProposalID: next.ID,
			Proposal:   next,
			LockedIou:  liou,
		},
	}, nil
}

func (e *Engine) accept(v View, env Env, actor string, c Accept) (*Transition, error) {
	p, err := e.liveProposal(v, c.ProposalID)
	if err != nil {
		return nil, err
	}
	if actor != p.Destination || actor != p.Holder() {
		return nil, fmt.Errorf("%w: %s is not the destination holding %s", ErrNotDestination, actor, p.ID)
	}
	accepted := *p
	accepted.Accepted = true
	liou := e.hopIou(env, p)
	return &Transition{
		Proposals:  []*model.TransferProposal{&accepted},
		LockedIous: []*model.LockedIou{liou},
		Event: model.Event{
			Name:       model.EventTransferAccepted,
			ChainID:    p.ChainID,
			ProposalID: p.ID,
			Proposal:   &accepted,
			LockedIou:  liou,
		},
	}, nil
}

func (e *Engine) unlock(v View, env Env, actor string, c Unlock) (*Transition, error) {
	l, err := v.LockedIou(c.LockedIouID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: locked iou %s", ErrNotFound, c.LockedIouID)
	}
	if l.Archived {
		return nil, fmt.Errorf("%w: locked iou %s is already unlocked", ErrAlreadyTerminal, l.ID)
	}
	if actor != l.Owner {
		return nil, fmt.Errorf("%w: only owner of %s can unlock it", ErrNotAuthorized, l.ID)
	}
	if !Matches(l.Lock, c.Secret) {
		return nil, ErrInvalidSecret
	}
	archived := *l
	archived.Archived = true
	iou := &model.Iou{
		ID:        env.NewID("iou"),
		ChainID:   l.ChainID,
		Issuer:    l.Issuer,
		Owner:     l.Owner,
		Amount:    l.Amount,
		CreatedAt: env.Timestamp,
	}
	reveal := &model.Reveal{
		ID:          l.ID,
		ChainID:     l.ChainID,
		LockedIouID: l.ID,
		Issuer:      l.Issuer,
		Owner:       l.Owner,
		Secret:      c.Secret,
		Lock:        l.Lock,
	}
	return &Transition{
		LockedIous: []*model.LockedIou{&archived},
		Ious:       []*model.Iou{iou},
		Reveals:    []*model.Reveal{reveal},
		Event: model.Event{
			Name:      model.EventIouUnlocked,
			ChainID:   l.ChainID,
			LockedIou: &archived,
			Reveal:    reveal,
		},
	}, nil
}

// cancel : the destination never accepted, so hop claims created by
// earlier forwards are archived with the proposal and no reveal can settle them.
func (e *Engine) cancel(v View, actor string, c Cancel) (*Transition, error) {
	p, err := e.liveProposal(v, c.ProposalID)
	if err != nil {
		return nil, err
	}
	if actor != p.Holder() && actor != p.Origin() {
		return nil, fmt.Errorf("%w: only %s or %s can cancel %s", ErrNotAuthorized, p.Holder(), p.Origin(), p.ID)
	}
	held, err := v.LockedIous(p.ChainID)
	if err != nil {
		return nil, err
	}
	var released []*model.LockedIou
	for _, l := range held {
		if l.Archived {
			continue
		}
		archived := *l
		archived.Archived = true
		released = append(released, &archived)
	}
	cancelled := *p
	cancelled.Cancelled = true
	return &Transition{
		Proposals:  []*model.TransferProposal{&cancelled},
		LockedIous: released,
		Event: model.Event{
			Name:       model.EventTransferCancelled,
			ChainID:    p.ChainID,
			ProposalID: p.ID,
			Proposal:   &cancelled,
		},
	}, nil
}

// liveProposal : proposal that can still be acted on
func (e *Engine) liveProposal(v View, id string) (*model.TransferProposal, error) {
	p, err := v.Proposal(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: proposal %s", ErrNotFound, id)
	}
	if p.Terminal() {
		return nil, fmt.Errorf("%w: proposal %s is %s", ErrAlreadyTerminal, p.ID, p.State())
	}
	return p, nil
}

// hopIou : claim of the accepting holder on its predecessor
func (e *Engine) hopIou(env Env, p *model.TransferProposal) *model.LockedIou {
	return &model.LockedIou{
		ID:        LockedIouID(p.ChainID, env.NewID("lockediou")),
		ChainID:   p.ChainID,
		Issuer:    p.Path[1],
		Owner:     p.Path[0],
		Amount:    p.Amount,
		Lock:      p.Lock,
		CreatedAt: env.Timestamp,
	}
}

// ProposalID : version seq of transfer chainID
func ProposalID(chainID string, seq int) string {
	return chainID + ":" + strconv.Itoa(seq)
}

// SplitProposalID : inverse of ProposalID
func SplitProposalID(id string) (string, int, error) {
	i := strings.LastIndexByte(id, ':')
	if i <= 0 {
		return "", 0, fmt.Errorf("%w: malformed proposal id %q", ErrNotFound, id)
	}
	seq, err := strconv.Atoi(id[i+1:])
	if err != nil || seq < 0 {
		return "", 0, fmt.Errorf("%w: malformed proposal id %q", ErrNotFound, id)
	}
	return id[:i], seq, nil
}

// LockedIouID : locked iou n of transfer chainID.
// a reveal carries the id of the locked iou it unlocked.
func LockedIouID(chainID, n string) string {
	return chainID + ":" + n
}

// SplitLockedIouID : inverse of LockedIouID, yields the transfer first
func SplitLockedIouID(id string) (string, string, error) {
	i := strings.IndexByte(id, ':')
	if i <= 0 || i == len(id)-1 {
		return "", "", fmt.Errorf("%w: malformed locked iou id %q", ErrNotFound, id)
	}
	return id[:i], id[i+1:], nil
}
