package hawala

import "github.com/cgrigis-da/hawalon/model"

// Upstream : among locked ious held by the issuer of r, picks the active one
// of the same transfer and returns the Unlock redeeming it with the revealed secret.
// hops of a transfer share one lock, the command passes the same predicate
// the downstream unlock passed.
func Upstream(r *model.Reveal, held []*model.LockedIou) (Unlock, bool) {
	for _, l := range held {
		if l.Archived || l.ChainID != r.ChainID || l.Owner != r.Issuer || l.Lock != r.Lock {
			continue
		}
		return Unlock{LockedIouID: l.ID, Secret: r.Secret}, true
	}
	return Unlock{}, false
}
