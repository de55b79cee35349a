package ledger

type capabilityKind int

const (
	capabilityExtend capabilityKind = iota
	capabilityMint
	capabilityBurn
	capabilityTransfer
)

func (kind capabilityKind) String() string {
	switch kind {
	case capabilityExtend:
		return "extend"
	case capabilityMint:
		return "mint"
	case capabilityBurn:
		return "burn"
	case capabilityTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// capability is an unforgeable authority handle. Each handle is tied to the
// ledger that created it by pointer identity, is never serialized, and never
// leaves the package; possession is the only proof of authority.
type capability struct {
	kind  capabilityKind
	owner *Ledger
}

// CapabilityBundle holds the four authority handles created at
// initialization: extend, mint, burn, and transfer. The bundle is owned by
// its ledger; operations borrow the handles by reference, and nothing
// outside the package can construct or duplicate one.
type CapabilityBundle struct {
	extend   *capability
	mint     *capability
	burn     *capability
	transfer *capability
}

func newCapabilityBundle(owner *Ledger) *CapabilityBundle {
	return &CapabilityBundle{
		extend:   &capability{kind: capabilityExtend, owner: owner},
		mint:     &capability{kind: capabilityMint, owner: owner},
		burn:     &capability{kind: capabilityBurn, owner: owner},
		transfer: &capability{kind: capabilityTransfer, owner: owner},
	}
}

// requireCapability rejects nil handles, handles of the wrong kind, and
// handles minted by a different ledger instance.
func (assetLedger *Ledger) requireCapability(handle *capability, kind capabilityKind) error {
	if handle == nil || handle.kind != kind || handle.owner != assetLedger {
		return NewUnauthorizedError(kind.String())
	}
	return nil
}

// borrowIssuerCapability hands a mint or burn handle to an operation acting
// on behalf of caller. Only the issuer possesses these authorities.
func (assetLedger *Ledger) borrowIssuerCapability(caller AccountID, handle *capability) (*capability, error) {
	if caller != assetLedger.issuer {
		return nil, NewUnauthorizedError(handle.kind.String())
	}
	return handle, nil
}
