package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

// Method ids for the lock family are ASSUMED (no defining constant was
// ever recovered) by following the ascending per-family convention;
// see DESIGN.md.
const (
	methodLockListReq  uint8 = 0x38
	methodLockListResp uint8 = 0x39
)

// Lock is a held managed-lock record.
type Lock struct {
	ConnectionID wire.Identifier
	Descr        string
	LockedAt     string
	SessionID    wire.Identifier
	Object       wire.Identifier
}

// decodeLockDescr reads the lock description field, which carries an
// ambiguous leading byte: a description that happens to start with
// 0x01 is indistinguishable, by byte value alone, from a one-byte
// presence flag prefixed before the description. The decoder resolves
// the ambiguity the same way the source does: by checking whether the
// bytes remaining after the candidate flag byte match the fixed
// 40-byte tail (locked_at u64 + session uuid + object uuid) that
// follows the description, with or without the flag byte consumed.
func decodeLockDescr(c *wire.Cursor) (string, error) {
	const tailLen = 8 + 16 + 16 // locked_at + session + object
	descrLen, err := c.TakeU8()
	if err != nil {
		return "", racerr.DecodeMessagef(err, "lock.descr_len")
	}
	if descrLen == 0 {
		return "", nil
	}
	first, err := c.TakeU8()
	if err != nil {
		return "", racerr.DecodeMessagef(err, "lock.descr")
	}
	remaining := c.Remaining()
	neededNoFlag := int(descrLen) - 1 + tailLen
	if neededNoFlag < tailLen {
		neededNoFlag = tailLen
	}
	neededFlag := int(descrLen) + tailLen

	useFlag := false
	if first == 0x01 {
		switch {
		case remaining == neededFlag:
			useFlag = true
		case remaining == neededNoFlag:
			useFlag = false
		case remaining >= neededFlag && remaining < neededNoFlag:
			useFlag = true
		case remaining >= neededNoFlag:
			useFlag = false
		default:
			useFlag = remaining >= neededFlag
		}
	}

	if useFlag {
		b, err := c.TakeBytes(int(descrLen))
		if err != nil {
			return "", racerr.DecodeMessagef(err, "lock.descr")
		}
		return string(b), nil
	}
	rest, err := c.TakeBytes(int(descrLen) - 1)
	if err != nil {
		return "", racerr.DecodeMessagef(err, "lock.descr")
	}
	return string(first) + string(rest), nil
}

func decodeLock(c *wire.Cursor) (Lock, error) {
	var l Lock
	var err error
	if l.ConnectionID, err = c.TakeIdentifier(); err != nil {
		return l, racerr.DecodeMessagef(err, "lock.connection")
	}
	if l.Descr, err = decodeLockDescr(c); err != nil {
		return l, err
	}
	if l.LockedAt, err = c.TakeDateTime(); err != nil {
		return l, racerr.DecodeMessagef(err, "lock.locked_at")
	}
	if l.SessionID, err = c.TakeIdentifier(); err != nil {
		return l, racerr.DecodeMessagef(err, "lock.session")
	}
	if l.Object, err = c.TakeIdentifier(); err != nil {
		return l, racerr.DecodeMessagef(err, "lock.object")
	}
	return l, nil
}

// LockListRequest lists locks in an infobase.
type LockListRequest struct {
	ClusterID  wire.Identifier
	InfobaseID wire.Identifier
}

func (LockListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodLockListReq, MethodResp: methodLockListResp, HasMethodResp: true,
		RequiresClusterContext: true, RequiresInfobaseContext: true,
	}
}
func (r LockListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r LockListRequest) Infobase() (wire.Identifier, bool) { return r.InfobaseID, true }
func (r LockListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.InfobaseID)
	}), nil
}
func (LockListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Lock, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Lock, 0, n)
	for i := 0; i < n; i++ {
		l, err := decodeLock(c)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
