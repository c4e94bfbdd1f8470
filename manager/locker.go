package manager

import (
	"encoding/json"
	"fmt"

	"github.com/cgrigis-da/hawalon/hawala"
	"github.com/cgrigis-da/hawalon/log"
	"github.com/cgrigis-da/hawalon/model"
	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// locker.go : persisting transitions, locking and unlocking of ious

// commit : writes every entity of a transition and emits its event.
// the engine already validated the transition against the same worldstate,
// lock and unlock check key state once more before writing.
func commit(stub shim.ChaincodeStubInterface, tr *hawala.Transition) error {
	const fnTag = "#commit"
	// a reveal is published once, checked before anything is written
	for _, r := range tr.Reveals {
		k := buildRevealKey(r.ChainID, r.LockedIouID)
		raw, err := stub.GetState(k)
		if err != nil {
			log.Errorf("%s :: %s key = %s error = %s", fnTag, errGettingState, k, err.Error())
			return err
		}
		if len(raw) != 0 {
			log.Errorf("%s :: %s reveal = %s", fnTag, errAlreadyRevealed, r.ID)
			return fmt.Errorf("reveal = %s is already published", r.ID)
		}
	}
	for _, p := range tr.Proposals {
		log.Debugf("%s putting proposal %s state = %s", fnTag, p.ID, p.State())
		if err := putJSON(stub, buildProposalKey(p.ChainID, p.Seq), p); err != nil {
			return err
		}
	}
	for _, l := range tr.LockedIous {
		var err error
		if l.Archived {
			err = unlock(stub, l)
		} else {
			err = lock(stub, l)
		}
		if err != nil {
			return err
		}
	}
	for _, iou := range tr.Ious {
		log.Debugf("%s putting iou %s issuer = %s owner = %s", fnTag, iou.ID, iou.Issuer, iou.Owner)
		if err := putJSON(stub, buildIouKey(iou.ID), iou); err != nil {
			return err
		}
	}
	for _, r := range tr.Reveals {
		log.Debugf("%s publishing reveal %s", fnTag, r.ID)
		if err := putJSON(stub, buildRevealKey(r.ChainID, r.LockedIouID), r); err != nil {
			return err
		}
	}
	payload, _ := json.Marshal(tr.Event)
	if err := stub.SetEvent(tr.Event.Name, payload); err != nil {
		log.Errorf("%s %s name = %s error = %s", fnTag, errSettingEvent, tr.Event.Name, err.Error())
		return err
	}
	return nil
}

// 1. check key is free
// 2. place locked iou
func lock(stub shim.ChaincodeStubInterface, l *model.LockedIou) error {
	var fnTag = fmt.Sprintf("#lock::%s", l.ChainID)
	k := buildLockedIouKey(l.ChainID, l.ID)
	raw, err := stub.GetState(k)
	if err != nil {
		log.Errorf("%s :: %s key = %s error = %s", fnTag, errGettingState, k, err.Error())
		return err
	}
	if len(raw) != 0 {
		log.Errorf("%s :: %s id = %s", fnTag, errAlreadyLocked, l.ID)
		return fmt.Errorf("locked iou = %s already exists", l.ID)
	}
	if err := putJSON(stub, k, l); err != nil {
		return err
	}
	log.Debugf("%s locked iou = %s issuer = %s owner = %s amount = %s lock = %s", fnTag, l.ID, l.Issuer, l.Owner, l.Amount, l.Lock)
	return nil
}

// 1. check locked iou is present and still locked
// 2. archive it
func unlock(stub shim.ChaincodeStubInterface, archived *model.LockedIou) error {
	var fnTag = fmt.Sprintf("#unlock::%s", archived.ChainID)
	var current model.LockedIou
	k := buildLockedIouKey(archived.ChainID, archived.ID)
	found, err := getJSON(stub, k, &current)
	if err != nil {
		return err
	}
	if !found || current.Archived {
		log.Errorf("%s :: %s id = %s", fnTag, errFreedLock, archived.ID)
		return fmt.Errorf("locked iou = %s is not locked", archived.ID)
	}
	if err := putJSON(stub, k, archived); err != nil {
		return err
	}
	log.Debugf("%s locked iou = %s is unlocked", fnTag, archived.ID)
	return nil
}
