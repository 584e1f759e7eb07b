package schema

import (
	"testing"

	"github.com/alkoleft/racclient/wire"
)

func writeProfileRecord(e *wire.Encoder, p Profile) {
	e.PutStr8(p.Name)
	e.PutStr8(p.Descr)
	e.PutU8(p.DirectoryAccess)
	e.PutU8(p.COMAccess)
	e.PutU8(p.AddinAccess)
	e.PutU8(p.ModuleAccess)
	e.PutU8(p.AppAccess)
	e.PutU8(p.Config)
	e.PutU8(p.PrivilegedMode)
	e.PutU8(p.InetAccess)
	e.PutU8(p.Crypto)
	e.PutU8(p.RightExtension)
	e.PutStr8(p.RightExtensionDefinitionRoles)
	e.PutU8(p.AllModulesExtension)
	e.PutStr8(p.ModulesAvailableForExtension)
	e.PutStr8(p.ModulesNotAvailableForExtension)
	e.PutStr8(p.PrivilegedModeRoles)
}

// TestProfileListRequestDecodesKnownFixture mirrors the field values of
// a captured 4-record profile-list reply (items[0] and items[3]); the
// two untouched middle records are filled with plausible data purely
// to exercise the list-length path.
func TestProfileListRequestDecodesKnownFixture(t *testing.T) {
	first := Profile{
		Name:                            "codex_prof_all_yes",
		Descr:                           "",
		Config:                          1,
		PrivilegedMode:                  1,
		Crypto:                          1,
		RightExtension:                  1,
		RightExtensionDefinitionRoles:   "role3;role4",
		AllModulesExtension:             1,
		ModulesAvailableForExtension:    "mod1;mod2",
		ModulesNotAvailableForExtension: "mod3;mod4",
		PrivilegedModeRoles:             "role1;role2",
	}
	last := Profile{
		Name:           "codex_prof_cfg_no",
		Descr:          "",
		Config:         0,
		PrivilegedMode: 1,
		Crypto:         1,
		RightExtension: 0,
	}

	e := wire.NewEncoder(1024)
	e.PutU8(4)
	writeProfileRecord(e, first)
	writeProfileRecord(e, Profile{Name: "codex_prof_mid_a"})
	writeProfileRecord(e, Profile{Name: "codex_prof_mid_b"})
	writeProfileRecord(e, last)

	req := ProfileListRequest{}
	profiles, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(profiles) != 4 {
		t.Fatalf("want 4 profiles, got %d", len(profiles))
	}
	if profiles[0] != first {
		t.Fatalf("profiles[0] mismatch: want %+v got %+v", first, profiles[0])
	}
	if profiles[3] != last {
		t.Fatalf("profiles[3] mismatch: want %+v got %+v", last, profiles[3])
	}
}

func TestProfileListRequestEmptyList(t *testing.T) {
	e := wire.NewEncoder(8)
	e.PutU8(0)
	req := ProfileListRequest{}
	profiles, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("want empty list, got %d", len(profiles))
	}
}

func TestProfileUpdateRequestEncodeBody(t *testing.T) {
	var cluster wire.Identifier
	req := ProfileUpdateRequest{
		ClusterID: cluster,
		Profile: Profile{
			Name:           "restricted",
			Descr:          "read-only profile",
			PrivilegedMode: 0,
			Crypto:         0,
		},
	}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	if _, err := c.TakeIdentifier(); err != nil {
		t.Fatalf("cluster: %v", err)
	}
	name, err := c.TakeStr8()
	if err != nil || name != "restricted" {
		t.Fatalf("name: %q %v", name, err)
	}
	descr, err := c.TakeStr8()
	if err != nil || descr != "read-only profile" {
		t.Fatalf("descr: %q %v", descr, err)
	}
}
