package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

// Method ids for the rule family are ASSUMED (no defining constant
// was ever recovered, only symbolic names resolved through the client
// dispatch) by following the ascending per-family convention; see
// DESIGN.md. RuleUpdate deliberately reuses RuleInsert's
// request/response ids: this mirrors the source's own dispatch, which
// routes both onto the same wire method and distinguishes them only
// by whether the rule identifier slot is zeroed (insert) or populated
// (update).
const (
	methodRuleListReq   uint8 = 0x48
	methodRuleListResp  uint8 = 0x49
	methodRuleInfoReq   uint8 = 0x4a
	methodRuleInfoResp  uint8 = 0x4b
	methodRuleApplyReq  uint8 = 0x4c
	methodRuleRemoveReq uint8 = 0x4d
	methodRuleInsertReq uint8 = 0x4e
	methodRuleInsertResp uint8 = 0x4f
)

// Rule is an admission-rule record governing which infobases a
// working server accepts.
type Rule struct {
	ID             wire.Identifier
	ObjectType     uint32
	InfobaseName   string
	RuleType       uint8
	ApplicationExt string
	Priority       uint32
}

func decodeRule(c *wire.Cursor) (Rule, error) {
	var r Rule
	var err error
	if r.ID, err = c.TakeIdentifier(); err != nil {
		return r, racerr.DecodeMessagef(err, "rule.id")
	}
	if r.ObjectType, err = c.TakeU32BE(); err != nil {
		return r, racerr.DecodeMessagef(err, "rule.object_type")
	}
	if r.InfobaseName, err = c.TakeStr8(); err != nil {
		return r, racerr.DecodeMessagef(err, "rule.infobase_name")
	}
	if r.RuleType, err = c.TakeU8(); err != nil {
		return r, racerr.DecodeMessagef(err, "rule.rule_type")
	}
	if r.ApplicationExt, err = c.TakeStr8(); err != nil {
		return r, racerr.DecodeMessagef(err, "rule.application_ext")
	}
	if r.Priority, err = c.TakeU32BE(); err != nil {
		return r, racerr.DecodeMessagef(err, "rule.priority")
	}
	return r, nil
}

// RuleListRequest lists the admission rules configured on a working
// server.
type RuleListRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
}

func (RuleListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodRuleListReq, MethodResp: methodRuleListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r RuleListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r RuleListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r RuleListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
	}), nil
}
func (RuleListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Rule, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Rule, 0, n)
	for i := 0; i < n; i++ {
		ru, err := decodeRule(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ru)
	}
	return out, nil
}

// RuleInfoRequest fetches one admission rule's record.
type RuleInfoRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
	RuleID    wire.Identifier
}

func (RuleInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodRuleInfoReq, MethodResp: methodRuleInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r RuleInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r RuleInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r RuleInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(r.RuleID)
	}), nil
}
func (RuleInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Rule, error) {
	return decodeRule(wire.NewCursor(body))
}

// RuleApplyMode selects how pending rule edits are applied.
type RuleApplyMode uint32

const (
	// RuleApplyModeFull reassigns every infobase according to the
	// current rule set.
	RuleApplyModeFull RuleApplyMode = 1
	// RuleApplyModePartial reassigns only infobases affected by rules
	// changed since the last apply. The source names this variant but
	// its numeric value is not confirmed anywhere in the retrieved
	// pack; 0 is inferred from its ordinal position and is unvalidated,
	// see DESIGN.md.
	RuleApplyModePartial RuleApplyMode = 0
)

// RuleApplyRequest commits pending admission-rule edits.
type RuleApplyRequest struct {
	ClusterID wire.Identifier
	Mode      RuleApplyMode
}

func (RuleApplyRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodRuleApplyReq, RequiresClusterContext: true}
}
func (r RuleApplyRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r RuleApplyRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r RuleApplyRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutU32BE(uint32(r.Mode))
	}), nil
}
func (RuleApplyRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// RuleRemoveRequest deletes an admission rule.
type RuleRemoveRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
	RuleID    wire.Identifier
}

func (RuleRemoveRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodRuleRemoveReq, RequiresClusterContext: true}
}
func (r RuleRemoveRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r RuleRemoveRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r RuleRemoveRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(r.RuleID)
	}), nil
}
func (RuleRemoveRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// RuleInsertRequest creates a new admission rule at a given position.
// The wire rule-identifier slot is zeroed, distinguishing an insert
// from an update on the shared method id.
type RuleInsertRequest struct {
	ClusterID      wire.Identifier
	ServerID       wire.Identifier
	Position       uint32
	ObjectType     uint32
	InfobaseName   string
	RuleType       uint8
	ApplicationExt string
	Priority       uint32
}

func (RuleInsertRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodRuleInsertReq, MethodResp: methodRuleInsertResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r RuleInsertRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r RuleInsertRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r RuleInsertRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(wire.Identifier{})
		e.PutU32BE(r.Position)
		e.PutU32BE(r.ObjectType)
		e.PutStr8(r.InfobaseName)
		e.PutU8(r.RuleType)
		e.PutStr8(r.ApplicationExt)
		e.PutU32BE(r.Priority)
	}), nil
}
func (RuleInsertRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Rule, error) {
	return decodeRule(wire.NewCursor(body))
}

// RuleUpdateRequest edits an existing admission rule in place. It
// reuses RuleInsertRequest's wire method id, populating the rule
// identifier slot that RuleInsertRequest zeroes.
type RuleUpdateRequest struct {
	ClusterID      wire.Identifier
	ServerID       wire.Identifier
	RuleID         wire.Identifier
	Position       uint32
	ObjectType     uint32
	InfobaseName   string
	RuleType       uint8
	ApplicationExt string
	Priority       uint32
}

func (RuleUpdateRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodRuleInsertReq, MethodResp: methodRuleInsertResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r RuleUpdateRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r RuleUpdateRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r RuleUpdateRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(r.RuleID)
		e.PutU32BE(r.Position)
		e.PutU32BE(r.ObjectType)
		e.PutStr8(r.InfobaseName)
		e.PutU8(r.RuleType)
		e.PutStr8(r.ApplicationExt)
		e.PutU32BE(r.Priority)
	}), nil
}
func (RuleUpdateRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Rule, error) {
	return decodeRule(wire.NewCursor(body))
}
